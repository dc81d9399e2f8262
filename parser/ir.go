package parser

import (
	"strings"

	"github.com/algorandfoundation/rustgen/internal/naming"
)

// ParsedSpec is the intermediate representation produced by a parse. All
// derived Rust naming and capability flags are computed up front so the
// generator can treat it as read-only input.
type ParsedSpec struct {
	// Info is the raw info object of the document.
	Info map[string]any

	// Servers is the raw servers array of the document.
	Servers []map[string]any

	// Operations holds every operation with an operationId, in document order.
	Operations []*Operation

	// Schemas holds component schemas plus hoisted response schemas, keyed by name.
	Schemas map[string]*Schema

	// ContentTypes is the sorted set of content types seen in any request or
	// response body.
	ContentTypes []string

	// HasMsgpackOperations is true when at least one operation declares a
	// msgpack content type.
	HasMsgpackOperations bool

	// Warnings collects non-fatal anomalies such as skipped operations.
	Warnings []string
}

// Title returns the info title, or the empty string.
func (s *ParsedSpec) Title() string {
	t, _ := s.Info["title"].(string)
	return t
}

// Version returns the info version, or the empty string.
func (s *ParsedSpec) Version() string {
	v, _ := s.Info["version"].(string)
	return v
}

// Description returns the info description, or the empty string.
func (s *ParsedSpec) Description() string {
	d, _ := s.Info["description"].(string)
	return d
}

// SchemaNames returns the schema names in sorted order.
func (s *ParsedSpec) SchemaNames() []string {
	return sortedKeys(s.Schemas)
}

// Operation represents a single OpenAPI operation.
type Operation struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
	Description string
	Parameters  []*Parameter
	RequestBody map[string]any
	Responses   map[string]*Response
	Tags        []string

	// RustFunctionName is the snake_case method name generated for this operation.
	RustFunctionName string

	// RustErrorEnum is the name of the per-operation error enum.
	RustErrorEnum string

	// SupportsMsgpack is true when any request or response body declares a
	// msgpack content type.
	SupportsMsgpack bool

	// RequestBodySupportsMsgpack is true when the request body itself can be
	// transmitted as msgpack or raw binary.
	RequestBodySupportsMsgpack bool

	// RequestBodySupportsTextPlain is true when the request body declares text/plain.
	RequestBodySupportsTextPlain bool

	// HasOptionalString is true when any optional non-enum parameter is a String.
	HasOptionalString bool
}

func newOperation(op Operation) *Operation {
	op.RustFunctionName = naming.ToSnakeCase(op.OperationID)
	op.RustErrorEnum = naming.ToPascalCase(op.OperationID) + "Error"
	for _, param := range op.Parameters {
		if !param.Required && !param.IsEnumParameter() && param.RustType == "String" {
			op.HasOptionalString = true
			break
		}
	}
	return &op
}

// Parameter represents an operation parameter.
type Parameter struct {
	Name        string
	In          string
	RustType    string
	Required    bool
	Description string
	EnumValues  []string

	// RustName is the snake_case parameter name.
	RustName string

	// RustFieldName is RustName with Rust keywords escaped.
	RustFieldName string
}

func newParameter(p Parameter) *Parameter {
	p.RustName = naming.ToSnakeCase(p.Name)
	p.RustFieldName = naming.EscapeRustKeyword(p.RustName)
	return &p
}

// IsEnumParameter reports whether the parameter is constrained to a fixed
// set of string values.
func (p *Parameter) IsEnumParameter() bool { return len(p.EnumValues) > 0 }

// RustEnumType returns the generated enum type name for an enum parameter,
// or the empty string.
func (p *Parameter) RustEnumType() string {
	if !p.IsEnumParameter() {
		return ""
	}
	return naming.ToPascalCase(p.Name)
}

// IsArray reports whether the parameter maps onto a Vec type.
func (p *Parameter) IsArray() bool { return strings.HasPrefix(p.RustType, "Vec<") }

// EffectiveRustType returns the enum type for enum parameters and the mapped
// Rust type otherwise.
func (p *Parameter) EffectiveRustType() string {
	if enum := p.RustEnumType(); enum != "" {
		return enum
	}
	return p.RustType
}

// Response represents a single status code response of an operation.
type Response struct {
	StatusCode  string
	Description string

	// RustType is the mapped response body type, or empty for bodiless responses.
	RustType string

	ContentTypes []string

	// SupportsMsgpack is true when the response declares application/msgpack.
	SupportsMsgpack bool
}

// IsSuccess reports whether the response has a 2xx status code.
func (r *Response) IsSuccess() bool { return strings.HasPrefix(r.StatusCode, "2") }

// Property represents a single schema property.
type Property struct {
	Name        string
	RustType    string
	Required    bool
	Description string

	// IsBase64Encoded is true when the property carries binary data encoded
	// as a base64 string in JSON.
	IsBase64Encoded bool

	Extensions Extensions
	Format     string

	// Items describes the element type for array properties.
	Items *Property

	// RustName is the snake_case field name, honoring a rename extension.
	RustName string

	// RustFieldName is RustName with Rust keywords escaped.
	RustFieldName string

	// RustTypeWithMsgpack is the field type under msgpack serialization,
	// where base64 string fields become raw byte vectors.
	RustTypeWithMsgpack string

	// IsMsgpackField mirrors IsBase64Encoded after extension overrides.
	IsMsgpackField bool

	// IsSignedTransaction is true when the property or its items carry the
	// signed transaction extension.
	IsSignedTransaction bool
}

func newProperty(p Property) *Property {
	fieldName := p.Name
	if rename, ok := p.Extensions.FieldRename(); ok {
		fieldName = rename
	}
	p.RustName = naming.ToSnakeCase(fieldName)
	p.RustFieldName = naming.EscapeRustKeyword(p.RustName)

	if p.Extensions.BytesBase64() {
		p.IsBase64Encoded = true
	}

	switch {
	case p.IsBase64Encoded:
		p.RustTypeWithMsgpack = "Vec<u8>"
	case p.Items != nil && p.Items.IsBase64Encoded && strings.HasPrefix(p.RustType, "Vec<"):
		p.RustTypeWithMsgpack = "Vec<Vec<u8>>"
	default:
		p.RustTypeWithMsgpack = p.RustType
	}
	p.IsMsgpackField = p.IsBase64Encoded

	p.IsSignedTransaction = hasSignedTxnExtension(p.Extensions)
	if p.Items != nil {
		p.IsSignedTransaction = p.IsSignedTransaction || hasSignedTxnExtension(p.Items.Extensions)
	}
	return &p
}

func hasSignedTxnExtension(exts Extensions) bool {
	for _, ext := range exts {
		if strings.Contains(ext.Key, ExtSignedTxn) && truthy(ext.Value) {
			return true
		}
	}
	return false
}

// Schema represents a named schema: a component schema or a hoisted inline
// response schema.
type Schema struct {
	Name        string
	SchemaType  string
	Description string
	Properties  []*Property

	// RequiredFields lists the property names declared required.
	RequiredFields []string

	Extensions Extensions

	// UnderlyingRustType is set for array schemas instead of Properties.
	UnderlyingRustType string

	// EnumValues is set for string enum schemas.
	EnumValues []string

	// RustStructName is the PascalCase Rust type name.
	RustStructName string

	// RustFileName is the snake_case source file stem. A schema named Box
	// gets box_model to avoid colliding with std's Box in editors and docs.
	RustFileName string

	// HasMsgpackFields is true when any property carries base64 binary data.
	HasMsgpackFields bool

	HasRequiredFields bool

	// HasSignedTransactionFields is true when any property carries the
	// signed transaction extension.
	HasSignedTransactionFields bool

	// IsStringEnum is true for string schemas with enum values.
	IsStringEnum bool

	// ImplementsMsgpack is decided by capability propagation after all
	// schemas are parsed.
	ImplementsMsgpack bool
}

func newSchema(s Schema) *Schema {
	s.RustStructName = naming.ToPascalCase(s.Name)
	if s.Name == "Box" {
		s.RustFileName = strings.ToLower(s.Name) + "_model"
	} else {
		s.RustFileName = naming.ToSnakeCase(s.Name)
	}
	for _, prop := range s.Properties {
		if prop.IsBase64Encoded || (prop.Items != nil && prop.Items.IsBase64Encoded) {
			s.HasMsgpackFields = true
			break
		}
	}
	s.HasRequiredFields = len(s.RequiredFields) > 0
	for _, prop := range s.Properties {
		if prop.IsSignedTransaction {
			s.HasSignedTransactionFields = true
			break
		}
	}
	s.IsStringEnum = s.SchemaType == "string" && len(s.EnumValues) > 0
	return &s
}
