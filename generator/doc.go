// Package generator renders a parsed OpenAPI document into a complete Rust
// client crate.
//
// The output is a cargo package: Cargo.toml, README.md, src/lib.rs, one model
// file per component schema under src/models, and one module per operation
// under src/apis plus a client struct that exposes every endpoint as an async
// method. Models carry serde derives, base64 handling for binary fields, and
// msgpack trait implementations where the specification opts in.
//
// Rendering is template driven. The default templates are embedded in the
// binary; WithTemplateDir swaps in a directory with the same layout for
// customized output. All template helper functions are pure, so rendering the
// same parsed specification twice produces byte identical output.
//
// Typical use:
//
//	result, err := generator.GenerateWithOptions("openapi.json",
//		generator.WithPackageName("algod_client"))
//	if err != nil {
//		return err
//	}
//	if err := generator.WriteFiles(result, "algod_client"); err != nil {
//		return err
//	}
package generator
