package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/ollama"
)

// ChatHandler proxies the marketplace assistant to Ollama.
type ChatHandler struct {
	client  *ollama.Client
	schemas *validate.Registry
}

func NewChatHandler(client *ollama.Client, schemas *validate.Registry) *ChatHandler {
	return &ChatHandler{client: client, schemas: schemas}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) decode(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return "", false
	}
	if err := h.schemas.Check(r.Context(), "chat", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return "", false
	}
	return req.Message, true
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	message, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.client.Chat(r.Context(), message)
	if err != nil {
		if errors.Is(err, ollama.ErrCircuitOpen) {
			writeError(w, "assistant temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		logger.Error("chat failed", slog.Any("err", err))
		writeError(w, "assistant request failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// ChatStream forwards reply chunks as they arrive over a chunked response.
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	message, ok := h.decode(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	wrote := false
	err := h.client.ChatStream(r.Context(), message, func(chunk string) error {
		if _, werr := w.Write([]byte(chunk)); werr != nil {
			return werr
		}
		wrote = true
		if canFlush {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		if !wrote {
			if errors.Is(err, ollama.ErrCircuitOpen) {
				writeError(w, "assistant temporarily unavailable", http.StatusServiceUnavailable)
				return
			}
			writeError(w, "assistant request failed", http.StatusBadGateway)
			return
		}
		// headers are gone; log and drop the connection
		logger.Error("chat stream aborted", slog.Any("err", err))
	}
}
