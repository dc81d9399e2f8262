package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/algorandfoundation/rustgen/parser"
)

type parseInput struct {
	Path string `json:"path" jsonschema:"Path to the OpenAPI document (JSON or YAML)"`
}

type parseOperationSummary struct {
	OperationID      string `json:"operation_id"`
	Method           string `json:"method"`
	Path             string `json:"path"`
	RustFunctionName string `json:"rust_function_name"`
	SupportsMsgpack  bool   `json:"supports_msgpack,omitempty"`
}

type parseOutput struct {
	Title                string                  `json:"title"`
	Version              string                  `json:"version"`
	OperationCount       int                     `json:"operation_count"`
	SchemaCount          int                     `json:"schema_count"`
	ContentTypes         []string                `json:"content_types,omitempty"`
	HasMsgpackOperations bool                    `json:"has_msgpack_operations"`
	Operations           []parseOperationSummary `json:"operations,omitempty"`
	Schemas              []string                `json:"schemas,omitempty"`
	Warnings             []string                `json:"warnings,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	if input.Path == "" {
		return errResult(fmt.Errorf("path is required")), parseOutput{}, nil
	}

	spec, err := parser.New().Parse(input.Path)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Title:                spec.Title(),
		Version:              spec.Version(),
		OperationCount:       len(spec.Operations),
		SchemaCount:          len(spec.Schemas),
		ContentTypes:         spec.ContentTypes,
		HasMsgpackOperations: spec.HasMsgpackOperations,
		Schemas:              spec.SchemaNames(),
		Warnings:             spec.Warnings,
	}
	for _, op := range spec.Operations {
		output.Operations = append(output.Operations, parseOperationSummary{
			OperationID:      op.OperationID,
			Method:           op.Method,
			Path:             op.Path,
			RustFunctionName: op.RustFunctionName,
			SupportsMsgpack:  op.SupportsMsgpack,
		})
	}
	return nil, output, nil
}
