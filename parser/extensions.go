package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Vendor extension keys recognized by the parser.
const (
	// ExtBigInt forces an integer schema onto u64 regardless of format or bounds.
	ExtBigInt = "x-algokit-bigint"

	// ExtSignedTxn marks a schema or property as carrying a signed transaction,
	// which requires msgpack serialization support.
	ExtSignedTxn = "x-algokit-signed-txn"

	// ExtBytesBase64 marks a string property as base64 encoded bytes.
	ExtBytesBase64 = "x-algokit-bytes-base64"

	// ExtFieldRename overrides the generated Rust field name for a property.
	ExtFieldRename = "x-algokit-field-rename"

	// ExtMsgpackEncoding marks a property as having a msgpack specific encoding.
	ExtMsgpackEncoding = "x-msgpack-encoding"
)

// Extension is a single captured vendor extension key-value pair.
type Extension struct {
	Key   string
	Value any
}

// Extensions holds the x- prefixed keys captured from a schema or property,
// ordered lexicographically by key so iteration is deterministic.
type Extensions []Extension

// CaptureExtensions collects every x- prefixed key from a raw mapping.
func CaptureExtensions(raw map[string]any) Extensions {
	var exts Extensions
	for k, v := range raw {
		if strings.HasPrefix(k, "x-") {
			exts = append(exts, Extension{Key: k, Value: v})
		}
	}
	sort.Slice(exts, func(i, j int) bool { return exts[i].Key < exts[j].Key })
	return exts
}

// Get returns the value for key and whether it was present.
func (e Extensions) Get(key string) (any, bool) {
	for _, ext := range e {
		if ext.Key == key {
			return ext.Value, true
		}
	}
	return nil, false
}

// Has reports whether key was captured.
func (e Extensions) Has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

// Keys returns the captured keys in lexicographic order.
func (e Extensions) Keys() []string {
	keys := make([]string, len(e))
	for i, ext := range e {
		keys[i] = ext.Key
	}
	return keys
}

// BigInt reports whether x-algokit-bigint is set and truthy.
func (e Extensions) BigInt() bool { return e.truthy(ExtBigInt) }

// SignedTxn reports whether x-algokit-signed-txn is set and truthy.
func (e Extensions) SignedTxn() bool { return e.truthy(ExtSignedTxn) }

// BytesBase64 reports whether x-algokit-bytes-base64 is set and truthy.
func (e Extensions) BytesBase64() bool { return e.truthy(ExtBytesBase64) }

// MsgpackEncoding reports whether x-msgpack-encoding is set and truthy.
func (e Extensions) MsgpackEncoding() bool { return e.truthy(ExtMsgpackEncoding) }

// FieldRename returns the x-algokit-field-rename override, if present.
func (e Extensions) FieldRename() (string, bool) {
	v, ok := e.Get(ExtFieldRename)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (e Extensions) truthy(key string) bool {
	v, ok := e.Get(key)
	if !ok {
		return false
	}
	return truthy(v)
}

// truthy mirrors loose boolean interpretation of extension values, so both
// `x-algokit-bigint: true` and `x-algokit-bigint: "true"` count.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false" && t != "0"
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case nil:
		return false
	default:
		return fmt.Sprintf("%v", t) != ""
	}
}

// rawTruthy reads key from a raw mapping and interprets it loosely.
func rawTruthy(raw map[string]any, key string) bool {
	v, ok := raw[key]
	if !ok {
		return false
	}
	return truthy(v)
}
