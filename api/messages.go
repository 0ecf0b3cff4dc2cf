package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

type MessagesHandler struct {
	store   storage.Store
	schemas *validate.Registry
}

func NewMessagesHandler(store storage.Store, schemas *validate.Registry) *MessagesHandler {
	return &MessagesHandler{store: store, schemas: schemas}
}

func (h *MessagesHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if err := h.schemas.Check(r.Context(), "message", body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var m models.Message
	if err := json.Unmarshal(body, &m); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	recipient, err := h.store.GetUser(r.Context(), m.RecipientID)
	if err != nil {
		writeError(w, "failed to load recipient", http.StatusInternalServerError)
		return
	}
	if recipient == nil {
		writeError(w, "unknown recipient", http.StatusBadRequest)
		return
	}

	m.ID = ""
	m.SenderID = PrincipalFrom(r.Context()).ID
	m.Read = false
	if err := h.store.CreateMessage(r.Context(), &m); err != nil {
		writeError(w, "failed to send message", http.StatusInternalServerError)
		return
	}
	writeJSON(w, m, http.StatusCreated)
}

func (h *MessagesHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListThreads(r.Context(), PrincipalFrom(r.Context()).ID)
	if err != nil {
		writeError(w, "failed to list threads", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}

// GetConversation returns the exchange with one counterpart, oldest first,
// and marks inbound messages read.
func (h *MessagesHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID := PrincipalFrom(r.Context()).ID
	counterpartID := mux.Vars(r)["userId"]

	out, err := h.store.ListConversation(r.Context(), userID, counterpartID)
	if err != nil {
		writeError(w, "failed to load conversation", http.StatusInternalServerError)
		return
	}
	if err := h.store.MarkConversationRead(r.Context(), userID, counterpartID); err != nil {
		writeError(w, "failed to mark conversation read", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out, http.StatusOK)
}
