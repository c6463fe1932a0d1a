package util

import (
	"strings"
	"unicode"
)

// tsReservedWords are TypeScript keywords that cannot be used as declaration
// names. Checked case-insensitively so a schema key like "interface" cannot
// shadow a keyword after PascalCase conversion.
var tsReservedWords = map[string]bool{
	"any": true, "as": true, "boolean": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "declare": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "from": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"module": true, "namespace": true, "never": true, "new": true,
	"null": true, "number": true, "object": true, "of": true,
	"package": true, "private": true, "protected": true, "public": true,
	"readonly": true, "require": true, "return": true, "static": true,
	"string": true, "super": true, "switch": true, "symbol": true,
	"this": true, "throw": true, "true": true, "try": true, "type": true,
	"typeof": true, "undefined": true, "unknown": true, "var": true,
	"void": true, "while": true, "with": true, "yield": true,
}

// SanitizeTypeName converts an arbitrary schema key into a TypeScript-safe
// PascalCase declaration name. The original key is never used for reference
// lookups after this point; sanitation is a presentation concern only.
//
//	"user-name" -> "UserName"
//	"123test"   -> "_123test"
//	"interface" -> "Interface_"
func SanitizeTypeName(key string) string {
	name := ToPascalCase(key)
	if name == "" {
		return "_"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	if tsReservedWords[strings.ToLower(name)] {
		name += "_"
	}
	return name
}

// IsValidIdentifier reports whether s can be used as a bare TypeScript
// property key without quoting.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// PropertyKey renders a property name for use inside an interface body,
// quoting it when it is not a valid bare identifier.
//
//	"userId"     -> userId
//	"user-name"  -> 'user-name'
//	"123"        -> '123'
func PropertyKey(name string) string {
	if IsValidIdentifier(name) {
		return name
	}
	escaped := strings.ReplaceAll(name, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return "'" + escaped + "'"
}

// QuoteLiteral renders a string enum value as a single-quoted TypeScript
// literal, escaping embedded quotes and backslashes.
func QuoteLiteral(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return "'" + escaped + "'"
}

// EnumMemberName converts an enum literal to a member name for the named
// enumeration style: "low" -> "LOW", "in-progress" -> "IN_PROGRESS".
// A literal starting with a digit gets an underscore prefix.
func EnumMemberName(value string) string {
	name := ToUpperSnakeCase(value)
	if name == "" {
		return "_"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}
