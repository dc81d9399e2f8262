package generator

import (
	"sort"
	"strings"

	"github.com/algorandfoundation/rustgen/internal/naming"
	"github.com/algorandfoundation/rustgen/parser"
)

// ParameterEnum describes a generated enum for a string parameter with a
// fixed value set.
type ParameterEnum struct {
	Name          string
	EnumValues    []string
	Description   string
	ParameterName string
}

// CollectParameterEnums gathers the unique parameter enums across all
// operations, keeping the first occurrence of each enum name.
func CollectParameterEnums(operations []*parser.Operation) []ParameterEnum {
	seen := map[string]bool{}
	var enums []ParameterEnum
	for _, op := range operations {
		for _, param := range op.Parameters {
			if !param.IsEnumParameter() {
				continue
			}
			name := param.RustEnumType()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			enums = append(enums, ParameterEnum{
				Name:          name,
				EnumValues:    param.EnumValues,
				Description:   param.Description,
				ParameterName: param.Name,
			})
		}
	}
	return enums
}

// UniqueTags returns the sorted set of tags used by any operation.
func UniqueTags(operations []*parser.Operation) []string {
	seen := map[string]bool{}
	for _, op := range operations {
		for _, tag := range op.Tags {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagGroup is a set of operations sharing a first tag.
type TagGroup struct {
	Tag        string
	Operations []*parser.Operation
}

// GroupOperationsByTag groups operations by their first tag, untagged
// operations under "default", sorted by tag name.
func GroupOperationsByTag(operations []*parser.Operation) []TagGroup {
	byTag := map[string][]*parser.Operation{}
	for _, op := range operations {
		tag := "default"
		if len(op.Tags) > 0 {
			tag = op.Tags[0]
		}
		byTag[tag] = append(byTag[tag], op)
	}
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	groups := make([]TagGroup, 0, len(tags))
	for _, tag := range tags {
		groups = append(groups, TagGroup{Tag: tag, Operations: byTag[tag]})
	}
	return groups
}

// ParametersByLocation returns the operation's parameters declared in the
// given location (path, query, or header).
func ParametersByLocation(op *parser.Operation, in string) []*parser.Parameter {
	var params []*parser.Parameter
	for _, param := range op.Parameters {
		if param.In == in {
			params = append(params, param)
		}
	}
	return params
}

// HasParameterIn reports whether the operation declares any parameter in the
// given location.
func HasParameterIn(op *parser.Operation, in string) bool {
	return len(ParametersByLocation(op, in)) > 0
}

// HasFormatParameter reports whether the operation has a parameter named
// format, used by the runtime to negotiate msgpack responses.
func HasFormatParameter(op *parser.Operation) bool {
	for _, param := range op.Parameters {
		if param.Name == "format" {
			return true
		}
	}
	return false
}

// HasRequestBody reports whether the operation declares a request body.
func HasRequestBody(op *parser.Operation) bool {
	return len(op.RequestBody) > 0
}

// RequestBodyName returns the argument name used for the request body.
func RequestBodyName(op *parser.Operation) string {
	if !HasRequestBody(op) {
		return ""
	}
	return "request"
}

// IsRequestBodyRequired reports whether the request body is declared required.
func IsRequestBodyRequired(op *parser.Operation) bool {
	if !HasRequestBody(op) {
		return false
	}
	required, _ := op.RequestBody["required"].(bool)
	return required
}

// RequestBodyType maps the request body onto a Rust type, using the first
// declared content type in sorted order.
func RequestBodyType(op *parser.Operation) string {
	if !HasRequestBody(op) {
		return ""
	}
	content, _ := op.RequestBody["content"].(map[string]any)
	if len(content) == 0 {
		return ""
	}
	contentTypes := make([]string, 0, len(content))
	for ct := range content {
		contentTypes = append(contentTypes, ct)
	}
	sort.Strings(contentTypes)

	body, _ := content[contentTypes[0]].(map[string]any)
	schema, _ := body["schema"].(map[string]any)
	if ref, ok := schema["$ref"].(string); ok {
		parts := strings.Split(ref, "/")
		return QualifyTypeName(naming.ToPascalCase(parts[len(parts)-1]))
	}
	return parser.RustType(schema, nil, nil)
}

// ShouldImportRequestBodyType reports whether the request body type is a
// generated model that needs a crate::models import.
func ShouldImportRequestBodyType(requestBodyType string) bool {
	if requestBodyType == "" || primitiveTypes[requestBodyType] || strings.Contains(requestBodyType, "<") {
		return false
	}
	first := requestBodyType[0]
	if first < 'A' || first > 'Z' {
		return false
	}
	return IsValidRustIdentifier(requestBodyType) && !strings.Contains(requestBodyType, "_")
}

// IsErrorStatus reports whether a status code belongs in the error enum.
func IsErrorStatus(status string) bool {
	return strings.HasPrefix(status, "4") || strings.HasPrefix(status, "5") || status == "default"
}

// SuccessResponseType returns the mapped type of the first 2xx response, or
// the empty string for bodiless operations.
func SuccessResponseType(op *parser.Operation) string {
	for _, status := range sortedStatusCodes(op) {
		if strings.HasPrefix(status, "2") {
			return QualifyTypeName(op.Responses[status].RustType)
		}
	}
	return ""
}

// ErrorTypes builds the variant list for an operation's error enum: one
// variant per error status, a DefaultResponse fallback, and a catch-all
// UnknownValue variant.
func ErrorTypes(op *parser.Operation) []string {
	var variants []string
	hasDefault := false
	for _, status := range sortedStatusCodes(op) {
		if !IsErrorStatus(status) {
			continue
		}
		qualified := QualifyTypeName(op.Responses[status].RustType)
		if status == "default" {
			hasDefault = true
			if qualified != "" {
				variants = append(variants, "DefaultResponse("+qualified+")")
			} else {
				variants = append(variants, "DefaultResponse()")
			}
			continue
		}
		if qualified != "" {
			variants = append(variants, "Status"+status+"("+qualified+")")
		} else {
			variants = append(variants, "Status"+status+"()")
		}
	}
	if !hasDefault {
		variants = append(variants, "DefaultResponse()")
	}
	variants = append(variants, "UnknownValue(serde_json::Value)")
	return variants
}

// AllUsedTypes returns the sorted unique model types referenced by any
// operation's responses or parameters.
func AllUsedTypes(operations []*parser.Operation) []string {
	seen := map[string]bool{}
	for _, op := range operations {
		collectOperationTypes(op, seen)
	}
	return sortedSet(seen)
}

// OperationUsedTypes returns the sorted unique model types referenced by a
// single operation.
func OperationUsedTypes(op *parser.Operation) []string {
	seen := map[string]bool{}
	collectOperationTypes(op, seen)
	return sortedSet(seen)
}

func collectOperationTypes(op *parser.Operation, seen map[string]bool) {
	for _, resp := range op.Responses {
		if resp.RustType != "" {
			if base := extractBaseType(resp.RustType); !primitiveTypes[base] && !stdConflictingTypes[base] {
				seen[base] = true
			}
		}
	}
	for _, param := range op.Parameters {
		if base := extractBaseType(param.RustType); !primitiveTypes[base] && !stdConflictingTypes[base] {
			seen[base] = true
		}
	}
}

// extractBaseType unwraps one level of Vec or Option.
func extractBaseType(rustType string) string {
	if inner, ok := unwrapGeneric(rustType, "Vec<"); ok {
		return inner
	}
	if inner, ok := unwrapGeneric(rustType, "Option<"); ok {
		return inner
	}
	return rustType
}

// ClientType derives the generated client struct prefix from the spec title.
func ClientType(spec *parser.ParsedSpec) string {
	return DetectClientType(spec.Title())
}

func sortedStatusCodes(op *parser.Operation) []string {
	codes := make([]string, 0, len(op.Responses))
	for status := range op.Responses {
		codes = append(codes, status)
	}
	sort.Strings(codes)
	return codes
}

func sortedSet(seen map[string]bool) []string {
	items := make([]string, 0, len(seen))
	for item := range seen {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
