package questions

import (
	"errors"
	"testing"
)

func TestNormalizeShapes(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"Python": []any{"  Q1  ", "Q2", "Q3"},
		"Go": []any{
			map[string]any{"question": "Q1g", "ideal_answer_focus": "goroutines"},
			map[string]any{"q": "Q2g", "focus": "channels"},
			map[string]any{"prompt": "Q3g"},
		},
		"Docker": []any{
			map[string]any{"text": "Q1d"},
			map[string]any{"a": 1, "b": "Q2d"},
			map[string]any{"n": 42},
			7,
		},
	}

	set, err := Normalize(raw, []string{"Python", "Go", "Docker"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(set) != 3 {
		t.Fatalf("expected 3 technologies, got %d", len(set))
	}

	if got := set["Python"][0]; got.Question != "Q1" || got.IdealAnswerFocus != "" {
		t.Fatalf("string entries should be trimmed with empty focus, got %+v", got)
	}

	if got := set["Go"][0]; got.Question != "Q1g" || got.IdealAnswerFocus != "goroutines" {
		t.Fatalf("unexpected first Go question: %+v", got)
	}

	if got := set["Go"][1]; got.Question != "Q2g" || got.IdealAnswerFocus != "channels" {
		t.Fatalf("alternate q/focus keys should be accepted, got %+v", got)
	}

	if got := set["Go"][2]; got.Question != "Q3g" || got.IdealAnswerFocus != "" {
		t.Fatalf("prompt key should be accepted, got %+v", got)
	}

	if got := set["Docker"][0]; got.Question != "Q1d" {
		t.Fatalf("first string-valued field fallback failed, got %+v", got)
	}

	if got := set["Docker"][1]; got.Question != "Q2d" {
		t.Fatalf("first string-valued field should win regardless of key, got %+v", got)
	}

	if got := set["Docker"][2]; got.Question != `{"n":42}` {
		t.Fatalf("map without strings should be stringified, got %+v", got)
	}

	if got := set["Docker"][3]; got.Question != "7" {
		t.Fatalf("non-string non-map elements should be stringified, got %+v", got)
	}
}

func TestNormalizeSingleStringEntryUndersupplied(t *testing.T) {
	t.Parallel()

	// A plain string wraps to a one-question list, which then fails the
	// minimum-count check.
	raw := map[string]any{"Python": "What is a decorator?"}

	_, err := Normalize(raw, []string{"Python"})

	var insufficient *InsufficientQuestionsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientQuestionsError, got %v", err)
	}
	if insufficient.Tech != "Python" || insufficient.Got != 1 {
		t.Fatalf("unexpected error detail: %+v", insufficient)
	}
}

func TestNormalizeTruncatesOversupply(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"Python": []any{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7"},
	}

	set, err := Normalize(raw, []string{"Python"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := set["Python"]
	if len(got) != 5 {
		t.Fatalf("expected truncation to 5 questions, got %d", len(got))
	}

	for i, q := range got {
		expect := []string{"Q1", "Q2", "Q3", "Q4", "Q5"}[i]
		if q.Question != expect {
			t.Fatalf("expected order-preserving truncation, got %q at %d", q.Question, i)
		}
	}
}

func TestNormalizeMissingTechnology(t *testing.T) {
	t.Parallel()

	raw := map[string]any{"Python": []any{"Q1", "Q2", "Q3"}}

	_, err := Normalize(raw, []string{"Python", "Kubernetes"})

	var missing *MissingTechnologyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTechnologyError, got %v", err)
	}
	if missing.Tech != "Kubernetes" {
		t.Fatalf("error should name the missing technology, got %q", missing.Tech)
	}
}

func TestNormalizeUndersupplyReturnsNoPartialMapping(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"Python": []any{"Q1", "Q2", "Q3"},
		"Docker": []any{"Q1d", "Q2d"},
	}

	set, err := Normalize(raw, []string{"Python", "Docker"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if set != nil {
		t.Fatalf("expected no partial mapping, got %v", set)
	}
}

func TestNormalizeIgnoresUnrequestedTechnologies(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"Python": []any{"Q1", "Q2", "Q3"},
		"Extra":  []any{"Q1e"},
	}

	set, err := Normalize(raw, []string{"Python"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := set["Extra"]; ok {
		t.Fatal("unrequested technologies must not leak into the output")
	}
}

// Mirrors the combined alternate-key and undersupply scenario: Docker's single
// object entry is accepted via the "focus" fallback key but still fails the
// minimum-count check.
func TestNormalizeAlternateFocusKeyWithUndersupply(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"Python": []any{"Q1", "Q2", "Q3"},
		"Docker": []any{
			map[string]any{"question": "Q1d", "focus": "networking"},
		},
	}

	_, err := Normalize(raw, []string{"Python", "Docker"})

	var insufficient *InsufficientQuestionsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientQuestionsError, got %v", err)
	}
	if insufficient.Tech != "Docker" || insufficient.Got != 1 {
		t.Fatalf("unexpected error detail: %+v", insufficient)
	}
}
