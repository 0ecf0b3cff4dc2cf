// Package ollama wraps the Ollama API client behind the marketplace's chat
// assistant, adding retries, timeouts, and a circuit breaker.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ollama/ollama/api"
)

var ErrCircuitOpen = errors.New("ollama circuit open")

// package-level logger for pkg/ollama; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/ollama. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Client wraps the Ollama API client for the marketplace chat assistant.
type Client struct {
	api    *api.Client
	cfg    Config
	client *http.Client

	// simple circuit breaker state
	failures  int32
	openUntil int64 // unix nano
	closed    int32 // atomic flag for Close()
}

// ChatResult is one completed assistant turn.
type ChatResult struct {
	Reply     string `json:"reply"`
	Model     string `json:"model"`
	LatencyMS int64  `json:"latencyMs"`
}

// NewClient creates a chat client against the configured Ollama instance.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		api:    api.NewClient(u, httpClient),
		cfg:    cfg,
		client: httpClient,
	}
	logger.Info("ollama: client created", slog.String("base_url", cfg.BaseURL), slog.String("model", cfg.Model))
	return c, nil
}

func NewDefaultClient(cfg Config) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close releases idle connections on the underlying transport. Idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.failures) < int32(c.cfg.CircuitFailureThreshold) {
		return false
	}

	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}

	// attempt half-open: reset failures and allow a request
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	v := atomic.AddInt32(&c.failures, 1)
	if v >= int32(c.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(c.cfg.CircuitReset).UnixNano())
	}
}

// Health pings the Ollama instance by listing installed models.
func (c *Client) Health(ctx context.Context) error {
	if c.isCircuitOpen() {
		return ErrCircuitOpen
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if _, err := c.api.List(ctx); err != nil {
		c.recordFailure()
		return fmt.Errorf("health check failed: %w", err)
	}

	atomic.StoreInt32(&c.failures, 0)
	return nil
}

// Chat sends one user message and collects the full assistant reply. Retries
// transient failures with linear backoff.
func (c *Client) Chat(ctx context.Context, message string) (ChatResult, error) {
	var empty ChatResult
	if c.isCircuitOpen() {
		return empty, ErrCircuitOpen
	}

	stream := false
	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		req := &api.ChatRequest{
			Model:    c.cfg.Model,
			Messages: []api.Message{{Role: "user", Content: message}},
			Stream:   &stream,
		}

		var sb strings.Builder
		start := time.Now()
		err := c.api.Chat(ctxReq, req, func(r api.ChatResponse) error {
			sb.WriteString(r.Message.Content)
			return nil
		})
		cancel()

		if err == nil {
			atomic.StoreInt32(&c.failures, 0)
			return ChatResult{
				Reply:     sb.String(),
				Model:     c.cfg.Model,
				LatencyMS: time.Since(start).Milliseconds(),
			}, nil
		}

		lastErr = err
		c.recordFailure()

		time.Sleep(c.cfg.Backoff * time.Duration(attempt+1))
		if c.isCircuitOpen() {
			return empty, ErrCircuitOpen
		}
	}

	return empty, fmt.Errorf("chat failed after retries: %w", lastErr)
}

// ChatStream sends one user message and forwards reply chunks to emit as they
// arrive. No retries: once a chunk has been emitted the response is partial
// and cannot be replayed.
func (c *Client) ChatStream(ctx context.Context, message string, emit func(chunk string) error) error {
	if c.isCircuitOpen() {
		return ErrCircuitOpen
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req := &api.ChatRequest{
		Model:    c.cfg.Model,
		Messages: []api.Message{{Role: "user", Content: message}},
	}

	err := c.api.Chat(ctx, req, func(r api.ChatResponse) error {
		if r.Message.Content == "" {
			return nil
		}
		return emit(r.Message.Content)
	})
	if err != nil {
		c.recordFailure()
		return fmt.Errorf("chat stream: %w", err)
	}

	atomic.StoreInt32(&c.failures, 0)
	return nil
}
