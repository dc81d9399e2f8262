// Package naming provides string case conversion and Rust identifier utilities.
package naming

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// acronymBoundary splits runs of capitals before a capitalized word:
	// "HTTPResponse" -> "HTTP_Response".
	acronymBoundary = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)

	// lowerUpperBoundary splits a lowercase letter or digit followed by a
	// capital: "getHTTP" -> "get_HTTP".
	lowerUpperBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

	// delimiters are the separator characters normalized to underscores
	// before case splitting.
	delimiters = regexp.MustCompile(`[\-\.\s]`)

	// invalidIdentChars matches everything not legal in a Rust identifier.
	invalidIdentChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

	titleCaser = cases.Title(language.English)
)

// ToSnakeCase converts a string to snake_case, splitting camelCase and
// acronym boundaries.
// Example: "getHTTPResponse" -> "get_http_response"
// Example: "content-type" -> "content_type"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	s = delimiters.ReplaceAllString(s, "_")
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = lowerUpperBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// ToPascalCase converts a string to PascalCase.
// Example: "hello_world" -> "HelloWorld"
// Example: "asset-holding" -> "AssetHolding"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, word := range strings.Split(ToSnakeCase(s), "_") {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "hello_world" -> "helloWorld"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToConstCase converts a string to CONST_CASE.
// Example: "helloWorld" -> "HELLO_WORLD"
func ToConstCase(s string) string {
	return strings.ToUpper(ToSnakeCase(s))
}

// ToKebabCase converts a string to kebab-case.
// Example: "HelloWorld" -> "hello-world"
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

// ToTitleCase converts a string to space separated Title Case words.
// Example: "hello_world" -> "Hello World"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(ToSnakeCase(s), "_")
	return titleCaser.String(strings.Join(words, " "))
}

// ToAlphanumOnly strips every character that is not a letter or digit.
func ToAlphanumOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeIdentifier replaces characters that are illegal in a Rust
// identifier with underscores and prefixes an underscore when the result
// would start with a digit.
func NormalizeIdentifier(s string) string {
	s = invalidIdentChars.ReplaceAllString(s, "_")
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// rustKeywords holds the strict, reserved, and weak Rust keywords.
var rustKeywords = map[string]struct{}{
	"as": {}, "break": {}, "const": {}, "continue": {}, "crate": {},
	"else": {}, "enum": {}, "extern": {}, "false": {}, "fn": {},
	"for": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"match": {}, "mod": {}, "move": {}, "mut": {}, "pub": {}, "ref": {},
	"return": {}, "self": {}, "Self": {}, "static": {}, "struct": {},
	"super": {}, "trait": {}, "true": {}, "type": {}, "unsafe": {},
	"use": {}, "where": {}, "while": {}, "async": {}, "await": {},
	"dyn": {}, "abstract": {}, "become": {}, "box": {}, "do": {},
	"final": {}, "macro": {}, "override": {}, "priv": {}, "typeof": {},
	"unsized": {}, "virtual": {}, "yield": {}, "try": {}, "union": {},
	"'static": {},
}

// noRawEscape are keywords that cannot be written as raw identifiers, so
// they are suffixed instead of prefixed with r#.
var noRawEscape = map[string]struct{}{
	"self": {}, "Self": {}, "super": {}, "crate": {}, "'static": {},
}

// IsRustKeyword reports whether s is a Rust keyword.
func IsRustKeyword(s string) bool {
	_, ok := rustKeywords[s]
	return ok
}

// EscapeRustKeyword makes s usable as a Rust identifier. Keywords get the
// r# raw identifier prefix; the handful that cannot be raw identifiers get
// a trailing underscore instead.
// Example: "type" -> "r#type"
// Example: "self" -> "self_"
func EscapeRustKeyword(s string) string {
	if !IsRustKeyword(s) {
		return s
	}
	if _, ok := noRawEscape[s]; ok {
		return strings.TrimPrefix(s, "'") + "_"
	}
	return "r#" + s
}
