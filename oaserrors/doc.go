// Package oaserrors provides the typed errors and sentinels used across the
// rustgen packages.
//
// Every fatal condition surfaces as a concrete error type (DocumentError,
// ReferenceError, SchemaCollisionError, TemplateNotFoundError, RenderError)
// that wraps its cause and matches a package sentinel through errors.Is:
//
//	if errors.Is(err, oaserrors.ErrReference) {
//		// a $ref could not be resolved
//	}
//
//	var collision *oaserrors.SchemaCollisionError
//	if errors.As(err, &collision) {
//		fmt.Println(collision.Name, collision.OperationID)
//	}
package oaserrors
