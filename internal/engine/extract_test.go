package engine

import (
	"testing"
)

func TestExtractEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain address", "my email is john@example.com", "john@example.com"},
		{"address with plus and dots", "reach me at first.last+tag@mail.example.co.uk thanks", "first.last+tag@mail.example.co.uk"},
		{"first match wins", "a@b.com or c@d.org", "a@b.com"},
		{"one letter tld rejected", "weird@host.x", ""},
		{"no address", "call me instead", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text).Email; got != tt.want {
				t.Errorf("Extract(%q).Email = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"ten digits", "you can reach me on 9876543210", "9876543210"},
		{"international with dashes", "+91-987-654-3210 is my number", "+91-987-654-3210"},
		{"spaces as separators", "call 44 7911 123456 anytime", "44 7911 123456"},
		{"ten digit pattern wins over international", "9876543210", "9876543210"},
		{"too short", "ext 12345", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text).PhoneNumber; got != tt.want {
				t.Errorf("Extract(%q).PhoneNumber = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	text := "I'm Jane, jane@example.com, 9876543210"
	first := Extract(text)
	for i := 0; i < 5; i++ {
		if got := Extract(text); got != first {
			t.Fatalf("Extract changed between runs: %+v vs %+v", got, first)
		}
	}
}

func TestExtractComplaintID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"canonical uuid", "check complaint status 3fa85f64-5717-4562-b3fc-2c963f66afa6", "3fa85f64-5717-4562-b3fc-2c963f66afa6"},
		{"uppercase hex", "id 3FA85F64-5717-4562-B3FC-2C963F66AFA6 please", "3FA85F64-5717-4562-B3FC-2C963F66AFA6"},
		{"bad version nibble", "3fa85f64-5717-0562-b3fc-2c963f66afa6", ""},
		{"bad variant nibble", "3fa85f64-5717-4562-73fc-2c963f66afa6", ""},
		{"not a uuid", "my complaint number is 12345", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractComplaintID(tt.text); got != tt.want {
				t.Errorf("ExtractComplaintID(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCandidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		want     string
		accepted bool
	}{
		{"two word name", "John Doe", "John Doe", true},
		{"three word name", "Mary Jane Watson", "Mary Jane Watson", true},
		{"too many words", "my name is John Doe", "", false},
		{"contains complaint keyword", "Delayed Order", "", false},
		{"contains at sign", "john@example.com", "", false},
		{"digits only", "9876543210", "", false},
		{"trimmed", "  Priya  ", "Priya", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CandidateName(tt.text)
			if ok != tt.accepted || got != tt.want {
				t.Errorf("CandidateName(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.accepted)
			}
		})
	}
}

func TestCandidateDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		accepted bool
	}{
		{"long with keyword", "My order arrived two weeks late and the box was crushed", true},
		{"long without keyword", "I would simply like to talk to somebody about this", false},
		{"short with keyword", "order late", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := CandidateDetails(tt.text); ok != tt.accepted {
				t.Errorf("CandidateDetails(%q) accepted = %v, want %v", tt.text, ok, tt.accepted)
			}
		})
	}
}

func TestValidators(t *testing.T) {
	t.Parallel()

	if !ValidEmail("a.b@example.com") {
		t.Error("expected a.b@example.com to be valid")
	}
	if ValidEmail("not an email") {
		t.Error("expected 'not an email' to be invalid")
	}
	if ValidEmail("trailing@example.com junk") {
		t.Error("expected value with trailing junk to be invalid")
	}
	if !ValidPhone("+91-987-654-3210") {
		t.Error("expected separator-laden number to be valid")
	}
	if ValidPhone("12345") {
		t.Error("expected short number to be invalid")
	}
}
