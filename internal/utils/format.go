package utils

import (
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var groupingPrinter = message.NewPrinter(language.English)

// FormatCount renders an integer with comma thousands separators, e.g. 1234567 as "1,234,567".
func FormatCount(value int64) string {
	return groupingPrinter.Sprintf("%d", value)
}

// CharacterCount returns the number of characters (runes) in text.
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}
