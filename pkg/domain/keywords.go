package domain

import (
	"strings"
	"unicode/utf8"
)

// KeywordSeparator is the only delimiter recognised in model output.
// Responses using newlines, semicolons or a trailing period are not normalised.
const KeywordSeparator = ", "

func SplitKeywords(raw string) []string {
	return strings.Split(raw, KeywordSeparator)
}

func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, KeywordSeparator)
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
