package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestAIFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider string
		model    string
		expect   int
	}{
		{
			name:     "both present",
			provider: "gemini",
			model:    "gemini-2.5-flash",
			expect:   2,
		},
		{
			name:   "both empty",
			expect: 0,
		},
		{
			name:     "whitespace provider dropped",
			provider: "   ",
			model:    "llama-3.1-8b-instant",
			expect:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := AIFields(tt.provider, tt.model); len(got) != tt.expect {
				t.Fatalf("expected %d fields, got %d", tt.expect, len(got))
			}
		})
	}
}

func TestWithAIFieldsNilLogger(t *testing.T) {
	t.Parallel()

	if got := WithAIFields(nil, "groq", ""); got == nil {
		t.Fatal("expected non-nil logger")
	}

	if got := WithAIFields(zap.NewNop(), "", ""); got == nil {
		t.Fatal("expected non-nil logger")
	}
}
