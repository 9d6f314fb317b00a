package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\r', '\n', '\t', '.', ',', '!', '?':
		return true
	}
	return false
}

// TrimPartialToken drops the characters after the last separator in text,
// which may be a word cut short. Text without a separator is returned
// unchanged.
func TrimPartialToken(text string) string {
	i := strings.LastIndexFunc(text, isSeparator)
	if i < 0 {
		return text
	}
	return text[:i]
}

// Tokenize splits text on separators, case-folds each piece, and drops empty
// tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, isSeparator)
	if len(fields) == 0 {
		return nil
	}
	// A Caser carries state and must not be shared across goroutines.
	folder := cases.Fold()
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := folder.String(field)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
