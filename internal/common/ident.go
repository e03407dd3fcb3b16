package common

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsIdentifier reports whether name is a valid, non-keyword Go identifier.
func IsIdentifier(name string) bool {
	return token.IsIdentifier(name)
}

// IsExported reports whether name starts with an upper-case letter.
func IsExported(name string) bool {
	return token.IsExported(name)
}

// Export upper-cases the first rune of name.
func Export(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}

// SnakeCase converts a Go identifier to snake_case.
// Runs of capitals are kept together: "HTTPStatus" -> "http_status".
func SnakeCase(name string) string {
	runes := []rune(name)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

				if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
					sb.WriteByte('_')
				}
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// ReceiverName returns the conventional one-letter receiver for a type name:
// its first letter, lower-cased. Names without a letter get "x".
func ReceiverName(typeName string) string {
	for _, r := range typeName {
		if unicode.IsLetter(r) {
			return string(unicode.ToLower(r))
		}
	}

	return "x"
}
