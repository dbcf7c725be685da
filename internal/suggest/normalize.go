package suggest

import (
	"strings"
	"unicode"
)

// Normalize folds an identifier for fuzzy comparison: CamelCase and
// snake_case spellings of the same words compare equal.
//
//	Normalize("XtructTwo")    == "xtructtwo"
//	Normalize("xtruct_two")   == "xtructtwo"
//	Normalize("template-streamop") == "templatestreamop"
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Tokenize splits a CamelCase, camelCase or snake_case identifier into
// lowercase words.
//
//	"OrderID"        -> ["order", "id"]
//	"XMLParser"      -> ["xml", "parser"]
//	"string_thing"   -> ["string", "thing"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new word begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) {
		return false
	}

	// "orderID": lower to upper.
	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "XMLParser": last capital of an acronym starts the next word.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
