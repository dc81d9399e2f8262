package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/algorandfoundation/rustgen/generator"
)

type generateInput struct {
	Path        string `json:"path"                   jsonschema:"Path to the OpenAPI document (JSON or YAML)"`
	OutputDir   string `json:"output_dir"             jsonschema:"Directory to write the generated crate into"`
	PackageName string `json:"package_name,omitempty" jsonschema:"Crate name, defaults to one derived from the document title"`
	Description string `json:"description,omitempty"  jsonschema:"Crate description override"`
	TemplateDir string `json:"template_dir,omitempty" jsonschema:"Directory of custom templates mirroring the embedded layout"`
}

type generateOutput struct {
	PackageName string   `json:"package_name"`
	Files       []string `json:"files"`
	Models      []string `json:"models,omitempty"`
	Operations  []string `json:"operations,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.Path == "" {
		return errResult(fmt.Errorf("path is required")), generateOutput{}, nil
	}
	if input.OutputDir == "" {
		return errResult(fmt.Errorf("output_dir is required")), generateOutput{}, nil
	}

	result, err := generator.GenerateWithOptions(input.Path,
		generator.WithPackageName(input.PackageName),
		generator.WithDescription(input.Description),
		generator.WithTemplateDir(input.TemplateDir),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	if err := generator.WriteFiles(result, input.OutputDir); err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		PackageName: result.PackageName,
		Models:      result.GeneratedTypes,
		Operations:  result.GeneratedOperations,
		Warnings:    result.Warnings,
	}
	for _, file := range result.Files {
		output.Files = append(output.Files, file.Path)
	}
	return nil, output, nil
}
