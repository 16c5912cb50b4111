package utils

import (
	"regexp"
	"strings"
)

var listSeparator = regexp.MustCompile(`\r?\n|,`)

// SplitList splits user input on commas and newlines, trims every entry and
// drops the blank ones.
func SplitList(input string) []string {
	items := []string{}
	for _, part := range listSeparator.Split(input, -1) {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func Truncate(s string, maxLength int) string {
	defaultString := "Unknown"

	if strings.ReplaceAll(s, " ", "") == "" {
		return defaultString
	}

	if len(s) <= maxLength {
		return s
	}

	trunc := (s)[:maxLength]
	return trunc
}
