// Package engine implements the dialogue intent and state engine that
// drives the complaint assistant: entity extraction, intent detection,
// and the per-turn slot-filling state machine.
package engine

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Phone patterns are tried in order; the first match wins.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\d{3,4}[-.\s]?\d{3,4}[-.\s]?\d{3,4}\b`),
	}

	// Canonical UUID form: version nibble 1-5, variant nibble 8/9/a/b.
	complaintIDPattern = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}\b`)

	digitsOnlyPattern = regexp.MustCompile(`^\d+$`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

// Words that make a short utterance look like a complaint rather than a name.
var nameStopWords = []string{
	"complaint", "issue", "problem", "delayed", "damaged", "@", "phone", "number",
}

// Words that mark a long utterance as a plausible complaint description.
var detailKeywords = []string{
	"order", "delivery", "service", "product", "issue", "problem",
}

// ExtractedInfo holds contact fields pulled from a single utterance.
// It is transient per-turn output; values are merged into a draft only
// after validation.
type ExtractedInfo struct {
	Email       string
	PhoneNumber string
}

// Extract pulls contact information out of free text. Absent fields are
// left empty; extraction ambiguity is not an error.
func Extract(text string) ExtractedInfo {
	var info ExtractedInfo
	if m := emailPattern.FindString(text); m != "" {
		info.Email = m
	}
	for _, p := range phonePatterns {
		if m := p.FindString(text); m != "" {
			info.PhoneNumber = m
			break
		}
	}
	return info
}

// ExtractComplaintID returns the first complaint identifier found in the
// text, or the empty string when there is none.
func ExtractComplaintID(text string) string {
	return complaintIDPattern.FindString(text)
}

// CandidateName reports whether a short utterance plausibly is the user
// stating their name. This is a heuristic: short complaint-like phrases
// will slip through either way, and callers must tolerate that.
func CandidateName(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	words := strings.Fields(trimmed)
	if len(words) == 0 || len(words) > 3 || len(text) >= 50 {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, kw := range nameStopWords {
		if strings.Contains(lower, kw) {
			return "", false
		}
	}
	if strings.Contains(text, "@") || digitsOnlyPattern.MatchString(trimmed) {
		return "", false
	}
	return trimmed, true
}

// CandidateDetails reports whether an utterance is descriptive enough to
// serve as the complaint body: longer than 20 characters and mentioning
// at least one domain keyword.
func CandidateDetails(text string) (string, bool) {
	if len(text) <= 20 {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, kw := range detailKeywords {
		if strings.Contains(lower, kw) {
			return strings.TrimSpace(text), true
		}
	}
	return "", false
}

// ValidEmail reports whether the whole value is a well-formed address.
func ValidEmail(email string) bool {
	m := emailPattern.FindString(email)
	return m == email && m != ""
}

// ValidPhone reports whether the value carries at least ten digits.
// Separators and a leading country code are ignored.
func ValidPhone(phone string) bool {
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	return len(digits) >= 10
}
