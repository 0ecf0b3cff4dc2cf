package api

import (
	"encoding/json"
	"io"
	"net/http"

	"log/slog"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, errorResponse{Message: message}, status)
}

// readBody drains the request body up to the size cap. On failure it writes
// the 400 itself and reports false.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, "unable to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}
