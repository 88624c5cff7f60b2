package gemini

import (
	"context"
	"testing"

	"google.golang.org/genai"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected an error for a blank api key")
	}
}

func TestJoinCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		resp   *genai.GenerateContentResponse
		expect string
	}{
		{
			name:   "nil response",
			resp:   nil,
			expect: "",
		},
		{
			name: "joins parts across candidates",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: " {\"Go\": [] } "}}}},
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "tail"}}}},
				},
			},
			expect: "{\"Go\": [] }\ntail",
		},
		{
			name: "skips nil and blank parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{nil, {Text: "  "}, {Text: "only"}}}},
					nil,
				},
			},
			expect: "only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := joinCandidates(tt.resp); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
