// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the OpenAPI parser and the Rust crate generator as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/algorandfoundation/rustgen"
)

const serverInstructions = `rustgen MCP server: parses OpenAPI 3.x documents and generates Rust client crates.

Tools:
- parse — parse an OpenAPI document and return a structural summary: title, version, operations with their generated Rust names, model schemas, msgpack support, and parser warnings.
- generate — generate a Rust client crate from an OpenAPI document into an output directory. Returns the manifest of generated files.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "rustgen", Version: rustgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse an OpenAPI 3.x document (JSON or YAML). Returns a structural summary: title, version, operations with their generated Rust function names, model schemas, content types, msgpack support, and any parser warnings. Operations without an operationId are skipped with a warning.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a Rust client crate from an OpenAPI 3.x document. Requires path and output_dir. The crate name defaults to one derived from the document title; override it with package_name. Returns a manifest of generated files.",
	}, handleGenerate)
}

// sanitizeError strips absolute filesystem paths from error messages to
// prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
