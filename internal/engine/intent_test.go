package engine

import (
	"testing"
)

func TestIsFilingIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"explicit complaint", "I want to file a complaint", true},
		{"delayed order", "my order is DELAYED again", true},
		{"damaged product", "the package arrived damaged", true},
		{"dissatisfaction", "I'm not satisfied with the replacement", true},
		{"neutral question", "what are your business hours?", false},
		{"greeting", "hello there", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFilingIntent(tt.text); got != tt.want {
				t.Errorf("IsFilingIntent(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsQueryIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"status keyword", "can you check status of my case", true},
		{"complaint id keyword", "I lost my complaint id", true},
		{"bare uuid implies query", "3fa85f64-5717-4562-b3fc-2c963f66afa6", true},
		{"uuid with filing words still query", "I have a complaint, see 3fa85f64-5717-4562-b3fc-2c963f66afa6", true},
		{"filing only", "I want to file a complaint", false},
		{"neutral", "do you ship internationally?", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQueryIntent(tt.text); got != tt.want {
				t.Errorf("IsQueryIntent(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
