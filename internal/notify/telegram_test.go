package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestTelegram(srv *httptest.Server) *Telegram {
	return &Telegram{
		baseURL:    srv.URL,
		token:      "test-token",
		chatID:     "42",
		httpClient: srv.Client(),
	}
}

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := newTestTelegram(srv)
	if err := tg.Send(context.Background(), "Sport: MLB\nGame: NYY vs BOS"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["chat_id"] != "42" {
		t.Errorf("chat_id = %q, want 42", gotBody["chat_id"])
	}
	if gotBody["text"] != "Sport: MLB\nGame: NYY vs BOS" {
		t.Errorf("text = %q", gotBody["text"])
	}
}

func TestTelegramSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tg := newTestTelegram(srv)
	if err := tg.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
