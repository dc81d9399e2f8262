// Package oaserrors defines the error taxonomy shared by the parser and
// generator packages.
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is checks.
var (
	// ErrDocument indicates the OpenAPI document could not be read or decoded.
	ErrDocument = errors.New("invalid document")

	// ErrReference indicates a $ref could not be resolved within the document.
	ErrReference = errors.New("unresolvable reference")

	// ErrSchemaCollision indicates a hoisted response schema would overwrite
	// an existing component schema.
	ErrSchemaCollision = errors.New("schema name collision")

	// ErrTemplateNotFound indicates a named template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRender indicates a template failed during execution.
	ErrRender = errors.New("template render failed")
)

// DocumentError describes a document that could not be loaded or decoded.
type DocumentError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("document: %s", e.Message)
}

func (e *DocumentError) Unwrap() error { return e.Cause }

func (e *DocumentError) Is(target error) bool { return target == ErrDocument }

// ReferenceError describes a $ref that could not be resolved.
type ReferenceError struct {
	Ref     string
	Message string
	Cause   error
}

func (e *ReferenceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("reference %s: %s", e.Ref, e.Message)
	}
	return fmt.Sprintf("reference %s could not be resolved", e.Ref)
}

func (e *ReferenceError) Unwrap() error { return e.Cause }

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// SchemaCollisionError describes a response schema hoist whose target name is
// already taken by a component schema.
type SchemaCollisionError struct {
	Name        string
	OperationID string
}

func (e *SchemaCollisionError) Error() string {
	return fmt.Sprintf("hoisting response of operation %q would overwrite component schema %q",
		e.OperationID, e.Name)
}

func (e *SchemaCollisionError) Is(target error) bool { return target == ErrSchemaCollision }

// TemplateNotFoundError describes a lookup for a template that does not exist.
type TemplateNotFoundError struct {
	Name  string
	Cause error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.Name)
}

func (e *TemplateNotFoundError) Unwrap() error { return e.Cause }

func (e *TemplateNotFoundError) Is(target error) bool { return target == ErrTemplateNotFound }

// RenderError describes a template execution failure.
type RenderError struct {
	Template string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rendering %q: %s", e.Template, e.Message)
	}
	return fmt.Sprintf("rendering %q failed", e.Template)
}

func (e *RenderError) Unwrap() error { return e.Cause }

func (e *RenderError) Is(target error) bool { return target == ErrRender }
