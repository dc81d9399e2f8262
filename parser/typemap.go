package parser

import (
	"strings"

	"github.com/algorandfoundation/rustgen/internal/naming"
)

// openapiTypeMapping maps (type, format) pairs onto Rust types. The empty
// format key is the default for the type; anything not listed falls back to
// String.
var openapiTypeMapping = map[string]map[string]string{
	"string": {
		"":          "String",
		"date":      "String",
		"date-time": "String",
		"byte":      "String",
		"binary":    "Vec<u8>",
	},
	"integer": {
		"":       "u64",
		"int32":  "u32",
		"int64":  "u64",
		"uint64": "u64",
	},
	"number": {
		"":       "f64",
		"float":  "f32",
		"double": "f64",
	},
	"boolean": {
		"": "bool",
	},
	"object": {
		"": "UnknownJsonValue",
	},
}

const (
	// u32Max is the largest value representable as a Rust u32.
	u32Max = 4294967295

	// smallIntegerMax is the bound under which a 0-based integer range is
	// treated as a small discriminator value.
	smallIntegerMax = 100
)

// enumKeywords are description fragments that mark an unbounded integer as an
// enum-like discriminator, which fits in u32.
var enumKeywords = []string{
	"value `1`", "value `2`", "value 1", "value 2", "refers to", "type.", "action.", "enum",
}

// RustType converts an OpenAPI schema fragment to a Rust type string.
// It never fails; unmappable input falls back to String. The visited set
// guards against reference cycles and may be nil.
func RustType(schema, schemas map[string]any, visited map[string]bool) string {
	if visited == nil {
		visited = make(map[string]bool)
	}

	if bigint, ok := schema[ExtBigInt].(bool); ok && bigint {
		return "u64"
	}

	if ref, ok := schema["$ref"].(string); ok {
		name := refName(ref)
		if visited[name] {
			return naming.ToPascalCase(name)
		}
		visited[name] = true
		return naming.ToPascalCase(name)
	}

	schemaType := "string"
	if t, ok := schema["type"].(string); ok {
		schemaType = t
	}

	if schemaType == "array" {
		items, _ := schema["items"].(map[string]any)
		return "Vec<" + RustType(items, schemas, visited) + ">"
	}

	if schemaType == "integer" && !rawTruthy(schema, ExtBigInt) {
		return selectIntegerType(schema)
	}

	format, _ := schema["format"].(string)
	return lookupTypeMapping(schemaType, format)
}

// rustTypeWithMsgpack is RustType except binary fields map to Vec<u8>.
func rustTypeWithMsgpack(schema, schemas map[string]any, visited map[string]bool) string {
	if detectBinaryField(schema) {
		return "Vec<u8>"
	}
	return RustType(schema, schemas, visited)
}

func lookupTypeMapping(schemaType, format string) string {
	formats, ok := openapiTypeMapping[schemaType]
	if !ok {
		return "String"
	}
	if rust, ok := formats[format]; ok {
		return rust
	}
	return "String"
}

// selectIntegerType picks u32 or u64 for an integer schema without a bigint
// marker. Explicit formats win; otherwise bounds and enum-like descriptions
// narrow the type to u32, and anything potentially large stays u64.
func selectIntegerType(schema map[string]any) string {
	if format, ok := schema["format"].(string); ok && format != "" {
		return lookupTypeMapping("integer", format)
	}

	maximum, hasMax := numericValue(schema["maximum"])
	minimum, hasMin := numericValue(schema["minimum"])

	if hasMax && maximum <= u32Max {
		return "u32"
	}
	if hasMin && minimum >= 0 && hasMax && maximum <= smallIntegerMax {
		return "u32"
	}

	description, _ := schema["description"].(string)
	description = strings.ToLower(description)
	for _, keyword := range enumKeywords {
		if strings.Contains(description, keyword) {
			return "u32"
		}
	}

	return "u64"
}

// numericValue normalizes the numeric types a YAML or JSON decode can produce.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// refName extracts the final segment of a $ref pointer.
// "#/components/schemas/Account" -> "Account"
func refName(ref string) string {
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

// detectBinaryField reports whether a property holds binary data transported
// as a base64 string: an explicit byte format, a description mentioning
// base64, or a msgpack encoding extension.
func detectBinaryField(prop map[string]any) bool {
	if format, ok := prop["format"].(string); ok && format == "byte" {
		return true
	}
	if desc, ok := prop["description"].(string); ok && strings.Contains(strings.ToLower(desc), "base64") {
		return true
	}
	return rawTruthy(prop, ExtMsgpackEncoding)
}
