package ollama_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jamakers/platform/pkg/ollama"
)

func testConfig(baseURL string) ollama.Config {
	cfg := ollama.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	cfg.Retries = 0
	cfg.Backoff = time.Millisecond
	return cfg
}

func TestClient_Health_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/tags" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"models":[{"name":"llama3"}]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := ollama.NewClient(testConfig(srv.URL), srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
}

func TestClient_Health_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := ollama.NewClient(testConfig(srv.URL), srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	if err := client.Health(context.Background()); err == nil {
		t.Fatalf("expected Health to fail")
	}
}

func TestClient_Chat_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/chat" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"Wah gwaan"},"done":true}` + "\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := ollama.NewClient(testConfig(srv.URL), srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	res, err := client.Chat(context.Background(), "greet me")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if res.Reply != "Wah gwaan" {
		t.Fatalf("unexpected reply: %q", res.Reply)
	}
	if res.Model != "llama3" {
		t.Fatalf("unexpected model: %q", res.Model)
	}
}

func TestClient_Chat_ServerError_FailsAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retries = 1
	client, err := ollama.NewClient(cfg, srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	if _, err := client.Chat(context.Background(), "hello"); err == nil {
		t.Fatalf("expected Chat to fail on non-200")
	}
}

func TestClient_Chat_CircuitOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retries = 3
	cfg.CircuitFailureThreshold = 2
	cfg.CircuitReset = time.Minute
	client, err := ollama.NewClient(cfg, srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	if _, err := client.Chat(context.Background(), "hello"); !errors.Is(err, ollama.ErrCircuitOpen) {
		t.Fatalf("expected circuit to open mid-retry, got %v", err)
	}
	// circuit stays open until the reset window elapses
	if _, err := client.Chat(context.Background(), "hello"); !errors.Is(err, ollama.ErrCircuitOpen) {
		t.Fatalf("expected circuit open on next call, got %v", err)
	}
}

func TestClient_ChatStream_ForwardsChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"Wah "},"done":false}` + "\n"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"gwaan"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	client, err := ollama.NewClient(testConfig(srv.URL), srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	var sb strings.Builder
	err = client.ChatStream(context.Background(), "greet me", func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("ChatStream failed: %v", err)
	}
	if sb.String() != "Wah gwaan" {
		t.Fatalf("unexpected streamed reply: %q", sb.String())
	}
}

func TestClient_ChatStream_EmitErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"chunk"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	client, err := ollama.NewClient(testConfig(srv.URL), srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	boom := errors.New("sink full")
	err = client.ChatStream(context.Background(), "greet me", func(chunk string) error {
		return boom
	})
	if err == nil {
		t.Fatalf("expected emit error to propagate")
	}
}
