package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", "test-model")
	if err != nil {
		t.Fatal(err)
	}
	client.APIURL = server.URL

	return client, server
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("  ", ""); err == nil {
		t.Fatal("expected an error for a blank api key")
	}
}

func TestGenerateContent(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": ` {"Python": []} `}},
			},
		})
	})

	out, err := client.GenerateContent(context.Background(), "generate questions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != `{"Python": []}` {
		t.Fatalf("unexpected output: %q", out)
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}

	if gotReq.Model != "test-model" {
		t.Fatalf("unexpected model: %q", gotReq.Model)
	}

	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "generate questions" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid api key", "type": "invalid_request_error"},
		})
	})

	_, err := client.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected an error")
	}

	if !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected api error message to be retained, got: %v", err)
	}
}

func TestGenerateContentEmptyChoices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	if _, err := client.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error for empty choices")
	}
}

func TestGenerateContentEmptyPrompt(t *testing.T) {
	client, err := NewClient("key", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for a blank prompt")
	}
}
