package api_test

import (
	"net/http"
	"testing"
)

func TestMessagingThreads(t *testing.T) {
	env := newTestEnv(t)
	brand := env.login(t, "team@iriewear.example")
	mfg := env.login(t, "ops@bluemountain.example")

	// unknown recipient is a bad request
	w := env.do(t, http.MethodPost, "/api/messages", brand, map[string]any{
		"recipientId": "no-such-user", "body": "hello?",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown recipient: expected 400, got %d", w.Code)
	}

	// brand opens the conversation with two messages
	for _, body := range []string{"Can you quote 300 totes?", "Need them before carnival."} {
		w = env.do(t, http.MethodPost, "/api/messages", brand, map[string]any{
			"recipientId": "seed-user-bluemountain", "body": body,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("send: status %d body=%s", w.Code, w.Body.String())
		}
	}

	// the manufacturer sees one thread with two unread messages
	w = env.do(t, http.MethodGet, "/api/messages/threads", mfg, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("threads: status %d", w.Code)
	}
	var threads []struct {
		CounterpartID string `json:"counterpartId"`
		UnreadCount   int    `json:"unreadCount"`
		LastMessage   struct {
			Body string `json:"body"`
		} `json:"lastMessage"`
	}
	decodeInto(t, w, &threads)
	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}
	if threads[0].CounterpartID != "seed-user-irie" || threads[0].UnreadCount != 2 {
		t.Fatalf("unexpected thread: %+v", threads[0])
	}
	if threads[0].LastMessage.Body != "Need them before carnival." {
		t.Fatalf("last message = %q", threads[0].LastMessage.Body)
	}

	// reading the conversation returns it oldest first and clears unread
	w = env.do(t, http.MethodGet, "/api/messages/seed-user-irie", mfg, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("conversation: status %d", w.Code)
	}
	var convo []struct {
		Body string `json:"body"`
	}
	decodeInto(t, w, &convo)
	if len(convo) != 2 || convo[0].Body != "Can you quote 300 totes?" {
		t.Fatalf("unexpected conversation order: %+v", convo)
	}

	w = env.do(t, http.MethodGet, "/api/messages/threads", mfg, nil)
	decodeInto(t, w, &threads)
	if len(threads) != 1 || threads[0].UnreadCount != 0 {
		t.Fatalf("unread not cleared: %+v", threads)
	}

	// the sender's own thread was never unread
	w = env.do(t, http.MethodGet, "/api/messages/threads", brand, nil)
	decodeInto(t, w, &threads)
	if len(threads) != 1 || threads[0].UnreadCount != 0 {
		t.Fatalf("sender thread unexpected: %+v", threads)
	}
}
