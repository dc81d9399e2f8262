package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algorandfoundation/rustgen/oaserrors"
)

const basicSpec = `
openapi: 3.0.0
info:
  title: Algod REST API
  version: 1.2.0
  description: API for interacting with the node
servers:
  - url: http://localhost:8080
paths:
  /v2/accounts/{address}:
    get:
      operationId: AccountInformation
      summary: Get account information.
      tags: [public]
      parameters:
        - name: address
          in: path
          required: true
          schema:
            type: string
        - name: format
          in: query
          schema:
            type: string
            enum: [json, msgpack]
      responses:
        "200":
          description: Account information
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Account"
  /v2/status:
    get:
      operationId: GetStatus
      tags: [public]
      responses:
        "200":
          description: Node status
          content:
            application/json:
              schema:
                type: object
                required: [last-round]
                properties:
                  last-round:
                    type: integer
                  time-since-last-round:
                    type: integer
components:
  schemas:
    Account:
      type: object
      description: Account information at a given round.
      required: [address, amount]
      properties:
        address:
          type: string
        amount:
          type: integer
          x-algokit-bigint: true
        status:
          type: string
`

func TestParseBytesBasic(t *testing.T) {
	p := New()
	spec, err := p.ParseBytes([]byte(basicSpec))
	require.NoError(t, err)

	assert.Equal(t, "Algod REST API", spec.Title())
	assert.Equal(t, "1.2.0", spec.Version())
	assert.Equal(t, "API for interacting with the node", spec.Description())
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, "http://localhost:8080", spec.Servers[0]["url"])

	require.Len(t, spec.Operations, 2)
	// Paths are visited in sorted order.
	assert.Equal(t, "AccountInformation", spec.Operations[0].OperationID)
	assert.Equal(t, "GetStatus", spec.Operations[1].OperationID)

	account := spec.Operations[0]
	assert.Equal(t, "GET", account.Method)
	assert.Equal(t, "/v2/accounts/{address}", account.Path)
	assert.Equal(t, "account_information", account.RustFunctionName)
	assert.Equal(t, "AccountInformationError", account.RustErrorEnum)
	require.Len(t, account.Parameters, 2)
	assert.Equal(t, "address", account.Parameters[0].RustName)
	assert.True(t, account.Parameters[0].Required)
	assert.Equal(t, []string{"json", "msgpack"}, account.Parameters[1].EnumValues)
	assert.Equal(t, "Format", account.Parameters[1].EffectiveRustType())

	resp := account.Responses["200"]
	require.NotNil(t, resp)
	assert.Equal(t, "Account", resp.RustType)
	assert.True(t, resp.IsSuccess())

	assert.Empty(t, spec.Warnings)
	assert.False(t, spec.HasMsgpackOperations)
	assert.Equal(t, []string{"application/json"}, spec.ContentTypes)
}

func TestParseSchemas(t *testing.T) {
	p := New()
	spec, err := p.ParseBytes([]byte(basicSpec))
	require.NoError(t, err)

	account := spec.Schemas["Account"]
	require.NotNil(t, account)
	assert.Equal(t, "Account", account.RustStructName)
	assert.Equal(t, "account", account.RustFileName)
	require.Len(t, account.Properties, 3)

	// Properties come back sorted by name.
	assert.Equal(t, "address", account.Properties[0].Name)
	assert.Equal(t, "amount", account.Properties[1].Name)
	assert.Equal(t, "status", account.Properties[2].Name)

	amount := account.Properties[1]
	assert.Equal(t, "u64", amount.RustType)
	assert.True(t, amount.Required)
	assert.True(t, amount.Extensions.BigInt())
	assert.False(t, account.Properties[2].Required)
}

func TestParseHoistsInlineResponseSchema(t *testing.T) {
	p := New()
	spec, err := p.ParseBytes([]byte(basicSpec))
	require.NoError(t, err)

	status := spec.Operations[1]
	assert.Equal(t, "GetStatus", status.Responses["200"].RustType)

	hoisted := spec.Schemas["GetStatus"]
	require.NotNil(t, hoisted, "inline 2xx object schema should be promoted to a named schema")
	assert.Equal(t, "GetStatus", hoisted.RustStructName)
	assert.Equal(t, "get_status", hoisted.RustFileName)
	// The response description is backfilled onto the hoisted schema.
	assert.Equal(t, "Node status", hoisted.Description)
	require.Len(t, hoisted.Properties, 2)
	assert.Equal(t, "last-round", hoisted.Properties[0].Name)
	assert.Equal(t, "last_round", hoisted.Properties[0].RustName)
	assert.True(t, hoisted.Properties[0].Required)
}

func TestParseHoistMultipleSuccessResponses(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths:
  /thing:
    post:
      operationId: CreateThing
      responses:
        "200":
          description: updated
          content:
            application/json:
              schema:
                type: object
                properties:
                  alpha: {type: string}
        "201":
          description: created
          content:
            application/json:
              schema:
                type: object
                properties:
                  beta: {type: string}
`
	// Responses are visited in sorted status order, so when several success
	// responses carry hoistable inline schemas the highest status wins the
	// promoted schema. Every parse picks the same one.
	for run := 0; run < 20; run++ {
		spec, err := New().ParseBytes([]byte(doc))
		require.NoError(t, err)

		hoisted := spec.Schemas["CreateThing"]
		require.NotNil(t, hoisted)
		require.Len(t, hoisted.Properties, 1)
		assert.Equal(t, "beta", hoisted.Properties[0].Name, "run %d hoisted a different response schema", run)
		assert.Equal(t, "created", hoisted.Description)
	}
}

func TestParseHoistCollisionFails(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths:
  /thing:
    get:
      operationId: GetThing
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id: {type: string}
components:
  schemas:
    GetThing:
      type: object
      properties:
        other: {type: string}
`
	p := New()
	_, err := p.ParseBytes([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrSchemaCollision))

	var collision *oaserrors.SchemaCollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "GetThing", collision.Name)
	assert.Equal(t, "GetThing", collision.OperationID)
}

func TestParseSkipsOperationWithoutID(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths:
  /thing:
    get:
      responses:
        "200": {description: ok}
    post:
      operationId: MakeThing
      responses:
        "200": {description: ok}
`
	p := New()
	spec, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)

	require.Len(t, spec.Operations, 1)
	assert.Equal(t, "MakeThing", spec.Operations[0].OperationID)
	require.Len(t, spec.Warnings, 1)
	assert.Contains(t, spec.Warnings[0], "no operationId")
}

func TestParseSkipsUnnamedParameter(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths:
  /thing:
    get:
      operationId: GetThing
      parameters:
        - in: query
          schema: {type: string}
      responses:
        "200": {description: ok}
`
	p := New()
	spec, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)

	assert.Empty(t, spec.Operations[0].Parameters)
	require.Len(t, spec.Warnings, 1)
	assert.Contains(t, spec.Warnings[0], "unnamed parameter")
}

func TestParseResolvesParameterReference(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths:
  /thing:
    get:
      operationId: GetThing
      parameters:
        - $ref: "#/components/parameters/limit"
      responses:
        "200": {description: ok}
components:
  parameters:
    limit:
      name: limit
      in: query
      schema:
        type: integer
        format: int32
`
	p := New()
	spec, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)

	require.Len(t, spec.Operations[0].Parameters, 1)
	limit := spec.Operations[0].Parameters[0]
	assert.Equal(t, "limit", limit.Name)
	assert.Equal(t, "query", limit.In)
	assert.Equal(t, "u32", limit.RustType)
}

func TestParseUnresolvableReferenceFails(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths:
  /thing:
    get:
      operationId: GetThing
      parameters:
        - $ref: "#/components/parameters/missing"
      responses:
        "200": {description: ok}
`
	p := New()
	_, err := p.ParseBytes([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrReference))
}

func TestParseWarnsOnDuplicateFunctionNames(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths:
  /a:
    get:
      operationId: getThing
      responses:
        "200": {description: ok}
  /b:
    get:
      operationId: get-thing
      responses:
        "200": {description: ok}
`
	p := New()
	spec, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)

	require.Len(t, spec.Operations, 2)
	require.Len(t, spec.Warnings, 1)
	assert.Contains(t, spec.Warnings[0], `"get_thing"`)
}

func TestParseArraySchema(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths: {}
components:
  schemas:
    AccountList:
      type: array
      items:
        $ref: "#/components/schemas/Account"
    Account:
      type: object
      properties:
        address: {type: string}
`
	p := New()
	spec, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)

	list := spec.Schemas["AccountList"]
	require.NotNil(t, list)
	assert.Equal(t, "array", list.SchemaType)
	assert.Equal(t, "Vec<Account>", list.UnderlyingRustType)
	assert.Empty(t, list.Properties)
}

func TestParseStringEnumSchema(t *testing.T) {
	doc := `
openapi: 3.0.0
info: {title: T, version: 1.0.0}
paths: {}
components:
  schemas:
    AddressRole:
      type: string
      enum: [sender, receiver, freeze-target]
`
	p := New()
	spec, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)

	role := spec.Schemas["AddressRole"]
	require.NotNil(t, role)
	assert.True(t, role.IsStringEnum)
	assert.Equal(t, []string{"sender", "receiver", "freeze-target"}, role.EnumValues)
}

func TestParseInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "scalar", data: "just a string"},
		{name: "sequence", data: "- a\n- b"},
		{name: "broken yaml", data: "{openapi: ["},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseBytes([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrDocument))
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(basicSpec), 0o600))

	p := New()
	spec, err := p.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "Algod REST API", spec.Title())
}

func TestParseFileNotFound(t *testing.T) {
	p := New()
	_, err := p.Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDocument))

	var docErr *oaserrors.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Contains(t, docErr.Path, "missing.yaml")
}

func TestParseJSONDocument(t *testing.T) {
	doc := `{"openapi":"3.0.0","info":{"title":"T","version":"1.0.0"},"paths":{}}`
	p := New()
	spec, err := p.ParseBytes([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "T", spec.Title())
}
