package generator

import (
	"embed"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/algorandfoundation/rustgen/internal/naming"
	"github.com/algorandfoundation/rustgen/parser"
)

//go:embed templates/*/*.tmpl
var templateFS embed.FS

// Logical template names rendered by the generator.
const (
	tmplLib            = "base/lib.rs.tmpl"
	tmplCargo          = "base/Cargo.toml.tmpl"
	tmplReadme         = "base/README.md.tmpl"
	tmplModel          = "models/model.rs.tmpl"
	tmplModelsMod      = "models/mod.rs.tmpl"
	tmplEndpoint       = "apis/endpoint.rs.tmpl"
	tmplClient         = "apis/client.rs.tmpl"
	tmplAPIsMod        = "apis/mod.rs.tmpl"
	tmplParameterEnums = "apis/parameter_enums.rs.tmpl"
)

// templateFuncs provides the functions available in templates: the sprig
// text function set extended with the Rust code generation helpers. All
// helpers are pure functions of their inputs.
func templateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	for name, fn := range rustFuncs {
		funcs[name] = fn
	}
	return funcs
}

var rustFuncs = template.FuncMap{
	// Naming
	"snakeCase":     naming.ToSnakeCase,
	"pascalCase":    naming.ToPascalCase,
	"camelCase":     naming.ToCamelCase,
	"constCase":     naming.ToConstCase,
	"titleCase":     naming.ToTitleCase,
	"normalizeName": naming.NormalizeIdentifier,
	"escapeKeyword": naming.EscapeRustKeyword,

	// Rust formatting
	"rustDocComment":    RustDocComment,
	"rustStringLiteral": rustStringLiteral,
	"sanitizeString":    SanitizeRustStringLiteral,
	"rustOptional":      rustOptionalWrap,
	"rustVec":           func(t string) string { return "Vec<" + t + ">" },
	"base64SerdeAs":     Base64SerdeAs,
	"qualifyType":       QualifyTypeName,
	"httpMethodEnum":    HTTPMethodEnum,
	"rustPathParams":    RustPathParams,
	"ensureSemver":      EnsureSemver,

	// Spec analysis
	"clientType":           ClientType,
	"uniqueTags":           UniqueTags,
	"groupOperationsByTag": GroupOperationsByTag,
	"errorTypes":           ErrorTypes,
	"successResponseType":  SuccessResponseType,
	"allUsedTypes":         AllUsedTypes,
	"operationUsedTypes":   OperationUsedTypes,
	"schemaDependencies":   SchemaDependencies,

	// Parameters
	"paramType": ParamRustType,
	"operationParameterEnums": func(op *parser.Operation) []ParameterEnum {
		return CollectParameterEnums([]*parser.Operation{op})
	},
	"hasFormatParameter":  HasFormatParameter,
	"hasPathParameters":   func(op *parser.Operation) bool { return HasParameterIn(op, "path") },
	"hasQueryParameters":  func(op *parser.Operation) bool { return HasParameterIn(op, "query") },
	"hasHeaderParameters": func(op *parser.Operation) bool { return HasParameterIn(op, "header") },
	"pathParameters":      func(op *parser.Operation) []*parser.Parameter { return ParametersByLocation(op, "path") },
	"queryParameters":     func(op *parser.Operation) []*parser.Parameter { return ParametersByLocation(op, "query") },
	"headerParameters":    func(op *parser.Operation) []*parser.Parameter { return ParametersByLocation(op, "header") },

	// Request body
	"hasRequestBody":              HasRequestBody,
	"requestBodyType":             RequestBodyType,
	"requestBodyName":             RequestBodyName,
	"isRequestBodyRequired":       IsRequestBodyRequired,
	"shouldImportRequestBodyType": ShouldImportRequestBodyType,
}

// rustStringLiteral quotes and escapes text as a Rust string literal.
func rustStringLiteral(text string) string {
	return `"` + SanitizeRustStringLiteral(text) + `"`
}

// rustOptionalWrap wraps a type in Option unless it already is one.
func rustOptionalWrap(rustType string) string {
	if len(rustType) >= 7 && rustType[:7] == "Option<" {
		return rustType
	}
	return "Option<" + rustType + ">"
}
