package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOperationDerivedFields(t *testing.T) {
	op := newOperation(Operation{
		OperationID: "GetBlockTimeStampOffset",
		Method:      "GET",
		Path:        "/v2/devmode/blocks/offset",
	})

	assert.Equal(t, "get_block_time_stamp_offset", op.RustFunctionName)
	assert.Equal(t, "GetBlockTimeStampOffsetError", op.RustErrorEnum)
	assert.False(t, op.HasOptionalString)
}

func TestNewOperationHasOptionalString(t *testing.T) {
	tests := []struct {
		name     string
		param    Parameter
		expected bool
	}{
		{
			name:     "optional string parameter",
			param:    Parameter{Name: "next", RustType: "String", Required: false},
			expected: true,
		},
		{
			name:     "required string parameter",
			param:    Parameter{Name: "address", RustType: "String", Required: true},
			expected: false,
		},
		{
			name:     "optional enum parameter",
			param:    Parameter{Name: "format", RustType: "String", EnumValues: []string{"json", "msgpack"}},
			expected: false,
		},
		{
			name:     "optional integer parameter",
			param:    Parameter{Name: "round", RustType: "u64"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := newOperation(Operation{
				OperationID: "Lookup",
				Parameters:  []*Parameter{newParameter(tt.param)},
			})
			assert.Equal(t, tt.expected, op.HasOptionalString)
		})
	}
}

func TestNewParameterDerivedFields(t *testing.T) {
	param := newParameter(Parameter{
		Name:       "format",
		In:         "query",
		RustType:   "String",
		EnumValues: []string{"json", "msgpack"},
	})

	assert.Equal(t, "format", param.RustName)
	assert.Equal(t, "format", param.RustFieldName)
	assert.True(t, param.IsEnumParameter())
	assert.Equal(t, "Format", param.RustEnumType())
	assert.Equal(t, "Format", param.EffectiveRustType())
	assert.False(t, param.IsArray())
}

func TestNewParameterKeywordEscaping(t *testing.T) {
	param := newParameter(Parameter{Name: "type", RustType: "String"})

	assert.Equal(t, "type", param.RustName)
	assert.Equal(t, "r#type", param.RustFieldName)
	assert.Equal(t, "String", param.EffectiveRustType())
	assert.Empty(t, param.RustEnumType())
}

func TestNewParameterArray(t *testing.T) {
	param := newParameter(Parameter{Name: "exclude", RustType: "Vec<String>"})
	assert.True(t, param.IsArray())
}

func TestNewPropertyDerivedFields(t *testing.T) {
	tests := []struct {
		name  string
		prop  Property
		check func(t *testing.T, p *Property)
	}{
		{
			name: "plain field",
			prop: Property{Name: "amountWithoutPendingRewards", RustType: "u64"},
			check: func(t *testing.T, p *Property) {
				assert.Equal(t, "amount_without_pending_rewards", p.RustName)
				assert.Equal(t, "amount_without_pending_rewards", p.RustFieldName)
				assert.Equal(t, "u64", p.RustTypeWithMsgpack)
				assert.False(t, p.IsMsgpackField)
			},
		},
		{
			name: "field rename extension",
			prop: Property{
				Name:       "apid",
				RustType:   "u64",
				Extensions: Extensions{{Key: ExtFieldRename, Value: "appIndex"}},
			},
			check: func(t *testing.T, p *Property) {
				assert.Equal(t, "app_index", p.RustName)
			},
		},
		{
			name: "base64 field becomes bytes under msgpack",
			prop: Property{Name: "genesisHash", RustType: "String", IsBase64Encoded: true},
			check: func(t *testing.T, p *Property) {
				assert.Equal(t, "Vec<u8>", p.RustTypeWithMsgpack)
				assert.True(t, p.IsMsgpackField)
			},
		},
		{
			name: "bytes base64 extension forces encoding",
			prop: Property{
				Name:       "stateProof",
				RustType:   "String",
				Extensions: Extensions{{Key: ExtBytesBase64, Value: true}},
			},
			check: func(t *testing.T, p *Property) {
				assert.True(t, p.IsBase64Encoded)
				assert.Equal(t, "Vec<u8>", p.RustTypeWithMsgpack)
			},
		},
		{
			name: "array of base64 items",
			prop: Property{
				Name:     "logs",
				RustType: "Vec<String>",
				Items:    newProperty(Property{Name: "logs_item", RustType: "String", IsBase64Encoded: true}),
			},
			check: func(t *testing.T, p *Property) {
				assert.Equal(t, "Vec<Vec<u8>>", p.RustTypeWithMsgpack)
				assert.False(t, p.IsMsgpackField)
			},
		},
		{
			name: "signed transaction extension",
			prop: Property{
				Name:       "txn",
				RustType:   "SignedTransaction",
				Extensions: Extensions{{Key: ExtSignedTxn, Value: true}},
			},
			check: func(t *testing.T, p *Property) {
				assert.True(t, p.IsSignedTransaction)
			},
		},
		{
			name: "signed transaction on items",
			prop: Property{
				Name:     "txns",
				RustType: "Vec<SignedTransaction>",
				Items: newProperty(Property{
					Name:       "txns_item",
					RustType:   "SignedTransaction",
					Extensions: Extensions{{Key: ExtSignedTxn, Value: true}},
				}),
			},
			check: func(t *testing.T, p *Property) {
				assert.True(t, p.IsSignedTransaction)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newProperty(tt.prop))
		})
	}
}

func TestNewSchemaDerivedFields(t *testing.T) {
	schema := newSchema(Schema{
		Name:           "asset-holding",
		SchemaType:     "object",
		RequiredFields: []string{"amount"},
		Properties: []*Property{
			newProperty(Property{Name: "amount", RustType: "u64", Required: true}),
			newProperty(Property{Name: "sig", RustType: "String", IsBase64Encoded: true}),
		},
	})

	assert.Equal(t, "AssetHolding", schema.RustStructName)
	assert.Equal(t, "asset_holding", schema.RustFileName)
	assert.True(t, schema.HasMsgpackFields)
	assert.True(t, schema.HasRequiredFields)
	assert.False(t, schema.HasSignedTransactionFields)
	assert.False(t, schema.IsStringEnum)
}

func TestNewSchemaBoxFileName(t *testing.T) {
	schema := newSchema(Schema{Name: "Box", SchemaType: "object"})

	assert.Equal(t, "Box", schema.RustStructName)
	assert.Equal(t, "box_model", schema.RustFileName)
}

func TestNewSchemaStringEnum(t *testing.T) {
	schema := newSchema(Schema{
		Name:       "address-role",
		SchemaType: "string",
		EnumValues: []string{"sender", "receiver", "freeze-target"},
	})

	assert.True(t, schema.IsStringEnum)
	assert.Empty(t, schema.Properties)
}
