package engine

import (
	"strings"
)

var filingKeywords = []string{
	"complaint", "complain", "issue", "problem", "file a complaint",
	"report a problem", "delayed", "damaged", "poor service",
	"not satisfied", "unhappy", "wrong", "error",
}

var queryKeywords = []string{
	"show details", "check complaint", "complaint status",
	"my complaint", "complaint id", "check status",
}

// IsFilingIntent reports whether the utterance looks like the user wants
// to file a complaint. Lexical matching only; false positives are
// tolerated by the state machine.
func IsFilingIntent(text string) bool {
	return containsAny(strings.ToLower(text), filingKeywords)
}

// IsQueryIntent reports whether the utterance looks like the user wants
// to look up an existing complaint. The presence of a complaint ID alone
// implies query intent, keywords or not.
func IsQueryIntent(text string) bool {
	if containsAny(strings.ToLower(text), queryKeywords) {
		return true
	}
	return ExtractComplaintID(text) != ""
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
