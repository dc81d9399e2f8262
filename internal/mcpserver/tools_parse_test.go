package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolSpec = `
openapi: 3.0.0
info:
  title: Algod REST API.
  version: 0.0.1
paths:
  /v2/status:
    get:
      operationId: GetStatus
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/NodeStatus'
            application/msgpack:
              schema:
                $ref: '#/components/schemas/NodeStatus'
components:
  schemas:
    NodeStatus:
      type: object
      required: [last-round]
      properties:
        last-round:
          type: integer
`

func writeToolSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(toolSpec), 0o644))
	return path
}

func TestHandleParse(t *testing.T) {
	result, output, err := handleParse(context.Background(), nil, parseInput{Path: writeToolSpec(t)})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "Algod REST API.", output.Title)
	assert.Equal(t, "0.0.1", output.Version)
	assert.Equal(t, 1, output.OperationCount)
	assert.Equal(t, 1, output.SchemaCount)
	assert.True(t, output.HasMsgpackOperations)
	assert.Equal(t, []string{"NodeStatus"}, output.Schemas)

	require.Len(t, output.Operations, 1)
	op := output.Operations[0]
	assert.Equal(t, "GetStatus", op.OperationID)
	assert.Equal(t, "get_status", op.RustFunctionName)
	assert.True(t, op.SupportsMsgpack)
}

func TestHandleParseMissingPath(t *testing.T) {
	result, _, err := handleParse(context.Background(), nil, parseInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestHandleParseFileNotFound(t *testing.T) {
	input := parseInput{Path: filepath.Join(t.TempDir(), "absent.yaml")}
	result, _, err := handleParse(context.Background(), nil, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
