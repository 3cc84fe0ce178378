package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier or module path for fuzzy matching:
// CamelCase boundaries and the separators '_', '-' and ' ' are erased and
// the result is lowercased. The module path separator is kept, so
// "a::userProfile" and "A::user_profile" normalize to the same string
// while the component structure still counts towards the distance.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// tokenizeCamelCase splits s into words.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "userProfile" -> ["user", "Profile"]
//   - "HTTPStatus" -> ["HTTP", "Status"]
//   - "user_role" -> ["user", "role"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken reports whether a word boundary falls before runes[i].
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	// "userProfile": split before 'P'.
	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "HTTPStatus": split before 'S'.
	nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && nextLower
}
