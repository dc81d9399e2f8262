// Package parser parses OpenAPI 3.x documents into a Rust-oriented
// intermediate representation.
//
// The parser is deliberately tolerant: it reads YAML or JSON, walks the
// paths and component schemas by hand, and never fails on an individual
// operation. Operations without an operationId and parameters without a name
// are skipped and reported through ParsedSpec.Warnings. Only structural
// problems fail a parse: an unreadable or non-mapping document, an
// unresolvable $ref, or a hoisted response schema colliding with an existing
// component schema.
//
// Beyond the document structure, the parser computes everything the
// generator needs up front:
//
//   - Rust type mapping for every schema, property, and parameter, including
//     integer width selection from formats, bounds, and descriptions
//   - snake_case / PascalCase Rust names with keyword escaping
//   - vendor extension capture (x-algokit-bigint, x-algokit-signed-txn,
//     x-algokit-bytes-base64, x-algokit-field-rename, x-msgpack-encoding)
//   - msgpack capability propagation from operation content types through
//     the schema reference graph
//   - hoisting of inline 2xx response object schemas into named models
//
// Basic usage:
//
//	p := parser.New()
//	spec, err := p.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, op := range spec.Operations {
//		fmt.Println(op.RustFunctionName)
//	}
package parser
