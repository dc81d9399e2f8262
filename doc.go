// Package rustgen generates Rust HTTP client crates from OpenAPI 3.x documents.
//
// rustgen parses an OpenAPI specification into a typed intermediate
// representation, maps OpenAPI schemas onto Rust types, propagates binary
// serialization (msgpack) capability through schema dependencies, and renders
// a complete Rust package through text templates.
//
// # Overview
//
// The library consists of two primary packages:
//
//   - parser: Parse an OpenAPI document into a Rust-oriented intermediate representation
//   - generator: Render the intermediate representation into Rust source files
//
// # Quick Start
//
// Parse a specification:
//
//	import "github.com/algorandfoundation/rustgen/parser"
//
//	p := parser.New()
//	spec, err := p.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Operations: %d\n", len(spec.Operations))
//
// Generate a Rust crate:
//
//	import "github.com/algorandfoundation/rustgen/generator"
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithPackageName("algod_client"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./out"); err != nil {
//		log.Fatal(err)
//	}
//
// # Command-Line Interface
//
// In addition to the library packages, rustgen provides a command-line interface:
//
//	# Generate a Rust crate
//	rustgen generate -o ./algod_client -p algod_client openapi.yaml
//
//	# Inspect a parsed spec
//	rustgen parse openapi.yaml
//
//	# Run as an MCP server over stdio
//	rustgen mcp
//
// Install the CLI:
//
//	go install github.com/algorandfoundation/rustgen/cmd/rustgen@latest
//
// # Error Handling
//
// Fatal conditions (unreadable documents, unresolvable references, schema
// name collisions, template failures) are reported through the typed errors
// in the oaserrors package. Per-operation anomalies such as a missing
// operationId never fail a parse; they are skipped and collected in
// ParsedSpec.Warnings.
package rustgen
