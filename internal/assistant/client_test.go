package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	return NewClientWithConfig(Config{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Model:   "gemini-2.0-flash",
		Timeout: 5 * time.Second,
	})
}

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}],"role":"model"},"finishReason":"STOP"}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// =============================================================================
// SUCCESS PATH
// =============================================================================

func TestGenerate_ExtractsFirstCandidateText(t *testing.T) {
	t.Parallel()
	var gotBody GeminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("API key not passed in query, got %q", r.URL.Query().Get("key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body did not decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateResponse("  The reunion is in May.  ")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	reply, err := client.Generate(context.Background(), "When is the reunion?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "The reunion is in May." {
		t.Errorf("expected trimmed candidate text, got %q", reply)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "When is the reunion?" {
		t.Errorf("user text not in request contents: %+v", gotBody.Contents)
	}
	if gotBody.SystemInstruction == nil || len(gotBody.SystemInstruction.Parts) == 0 {
		t.Error("system instruction missing from request")
	}
}

// =============================================================================
// FAILURE MODES
// =============================================================================

func TestGenerate_MissingAPIKey(t *testing.T) {
	t.Parallel()
	client := NewClientWithConfig(Config{BaseURL: "http://unused", Model: "m"})

	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error when API key is unset")
	}
}

func TestGenerate_Non200Status(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestGenerate_MalformedJSON(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for undecodable body")
	}
}

func TestGenerate_ErrorPayload(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"message":"invalid argument","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Generate(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for error payload")
	}
	if !strings.Contains(err.Error(), "invalid argument") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for absent candidate")
	}
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("   ")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for whitespace-only completion")
	}
}

// =============================================================================
// CONFIG DEFAULTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	t.Parallel()
	client := NewClientWithConfig(Config{APIKey: "k", BaseURL: "http://x/"})

	if client.Model() != "gemini-2.0-flash" {
		t.Errorf("expected default model, got %q", client.Model())
	}
	if client.baseURL != "http://x" {
		t.Errorf("expected trailing slash trimmed, got %q", client.baseURL)
	}
}
