package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/algorandfoundation/rustgen/internal/naming"
	"github.com/algorandfoundation/rustgen/parser"
)

const defaultSemver = "0.1.0"

var (
	docBulletPrefixes = []string{"* ", "- ", "+ "}
	pathParamPattern  = regexp.MustCompile(`\{([^}]+)\}`)
	digitsOnly        = regexp.MustCompile(`^[0-9]+$`)
)

// EnsureSemver repairs a version string into strict major.minor.patch form.
// A v prefix is stripped, non-numeric segments become 0, short versions are
// padded and long ones truncated. An empty or unusable version becomes 0.1.0.
func EnsureSemver(version string) string {
	if version == "" {
		return defaultSemver
	}
	cleaned := strings.TrimLeft(version, "v")
	var parts []string
	for _, part := range strings.Split(cleaned, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !digitsOnly.MatchString(part) {
			part = "0"
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return defaultSemver
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(parts[:3], ".")
}

// RustDocComment formats text as /// doc comment lines. Bullet lines get an
// extra indent, and a blank doc line separates a bullet run from a following
// paragraph.
func RustDocComment(text string, indent int) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	indentStr := strings.Repeat(" ", indent)

	if len(lines) == 1 {
		return indentStr + "/// " + lines[0]
	}

	var result []string
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		bullet := isDocBullet(stripped)

		if i > 0 && stripped != "" && !bullet &&
			len(result) > 0 && !strings.HasSuffix(strings.TrimSpace(result[len(result)-1]), "///") &&
			recentBullet(lines, i) {
			result = append(result, indentStr+"///")
		}

		prefix := "/// "
		if bullet {
			prefix = "///   "
		}
		result = append(result, indentStr+prefix+stripped)
	}
	return strings.Join(result, "\n")
}

func isDocBullet(line string) bool {
	for _, prefix := range docBulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// recentBullet reports whether any of the three lines before index i is a bullet.
func recentBullet(lines []string, i int) bool {
	start := i - 3
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		if isDocBullet(strings.TrimSpace(lines[j])) {
			return true
		}
	}
	return false
}

// SanitizeRustStringLiteral escapes text for inclusion in a Rust "" literal.
func SanitizeRustStringLiteral(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\t", `\t`,
	)
	return replacer.Replace(text)
}

// IsValidRustIdentifier reports whether name is usable as a Rust identifier
// without normalization.
func IsValidRustIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// httpMethodVariants maps methods onto variants of the runtime HttpMethod enum.
var httpMethodVariants = map[string]string{
	"GET":     "HttpMethod::Get",
	"POST":    "HttpMethod::Post",
	"PUT":     "HttpMethod::Put",
	"DELETE":  "HttpMethod::Delete",
	"PATCH":   "HttpMethod::Patch",
	"HEAD":    "HttpMethod::Head",
	"OPTIONS": "HttpMethod::Options",
}

// HTTPMethodEnum converts an HTTP method to its HttpMethod enum variant.
func HTTPMethodEnum(method string) string {
	if variant, ok := httpMethodVariants[strings.ToUpper(method)]; ok {
		return variant
	}
	return "HttpMethod::" + naming.ToPascalCase(strings.ToLower(method))
}

// DetectClientType derives the client struct prefix from the spec title.
// Known Algorand services map onto their canonical names; anything else uses
// the first word of the title.
func DetectClientType(title string) string {
	if title == "" {
		return "Api"
	}
	lower := strings.ToLower(strings.TrimSpace(title))
	if strings.Contains(lower, "algod") {
		return "Algod"
	}
	if strings.Contains(lower, "indexer") {
		return "Indexer"
	}
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return "Api"
	}
	word := strings.Trim(fields[0], ".,!?")
	if word == "" {
		return "Api"
	}
	// PascalCase keeps hyphenated words usable as a struct name prefix.
	return naming.ToPascalCase(strings.ToLower(word))
}

// RustPathParams rewrites hyphens to underscores inside {} placeholders only,
// leaving the rest of the path untouched.
// "/v2/accounts/{account-id}" -> "/v2/accounts/{account_id}"
func RustPathParams(path string) string {
	return pathParamPattern.ReplaceAllStringFunc(path, func(match string) string {
		inner := match[1 : len(match)-1]
		return "{" + strings.ReplaceAll(inner, "-", "_") + "}"
	})
}

// primitiveTypes are Rust types that never need a crate::models import.
var primitiveTypes = map[string]bool{
	"String": true, "str": true,
	"u32": true, "u64": true, "f32": true, "f64": true, "bool": true,
	"Vec<u8>": true, "Vec<String>": true, "Vec<u32>": true, "Vec<u64>": true,
	"serde_json::Value": true, "std::path::PathBuf": true,
	"()": true, "UnknownJsonValue": true,
}

// stdConflictingTypes are model names that shadow Rust std prelude types and
// must be referenced through their full crate path.
var stdConflictingTypes = map[string]bool{
	"Box": true,
}

// QualifyTypeName prefixes model types that conflict with the std prelude
// with their crate path, recursing into Vec and Option wrappers.
// "Box" -> "crate::models::Box", "Vec<Box>" -> "Vec<crate::models::Box>"
func QualifyTypeName(rustType string) string {
	if inner, ok := unwrapGeneric(rustType, "Vec<"); ok {
		return "Vec<" + QualifyTypeName(inner) + ">"
	}
	if inner, ok := unwrapGeneric(rustType, "Option<"); ok {
		return "Option<" + QualifyTypeName(inner) + ">"
	}
	if stdConflictingTypes[rustType] {
		return "crate::models::" + rustType
	}
	if rustType == "UnknownJsonValue" {
		return "crate::UnknownJsonValue"
	}
	return rustType
}

// ParamRustType returns the fully qualified Rust type of a parameter, using
// the generated enum for constrained parameters.
func ParamRustType(p *parser.Parameter) string {
	if p.IsEnumParameter() {
		return "crate::apis::parameter_enums::" + p.RustEnumType()
	}
	return QualifyTypeName(p.RustType)
}

func unwrapGeneric(rustType, prefix string) (string, bool) {
	if strings.HasPrefix(rustType, prefix) && strings.HasSuffix(rustType, ">") {
		return rustType[len(prefix) : len(rustType)-1], true
	}
	return "", false
}

// RustOptional wraps a type in Option unless the field is required.
func RustOptional(rustType string, required bool) string {
	if required {
		return rustType
	}
	return fmt.Sprintf("Option<%s>", rustType)
}

// SchemaDependencies returns the use statements a model file needs.
func SchemaDependencies(schema *parser.Schema) []string {
	deps := []string{"use serde::{Deserialize, Serialize};"}
	if schema.HasMsgpackFields {
		deps = append(deps, "use serde_with::serde_as;")
	}
	if schema.Extensions.SignedTxn() {
		deps = append(deps, "use algokit_transact::SignedTransaction as AlgokitSignedTransaction;")
	}
	if schema.ImplementsMsgpack {
		deps = append(deps, "use algokit_transact::AlgorandMsgpack;")
	}
	return deps
}

// Base64SerdeAs returns the serde_as attribute for a binary field that is
// base64 encoded on the wire, or the empty string for plain fields.
func Base64SerdeAs(prop *parser.Property) string {
	if prop.RustTypeWithMsgpack == prop.RustType {
		return ""
	}
	as := "serde_with::base64::Base64"
	if prop.RustTypeWithMsgpack == "Vec<Vec<u8>>" {
		as = "Vec<serde_with::base64::Base64>"
	}
	if !prop.Required {
		as = "Option<" + as + ">"
	}
	return `#[serde_as(as = "` + as + `")]`
}
