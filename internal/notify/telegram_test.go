package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "tahlil-bot/internal/errors"
)

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("token123")
	n.baseURL = srv.URL

	if err := n.Send(context.Background(), "42", "📊 signal block"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotPath != "/bottoken123/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["chat_id"] != "42" || gotBody["text"] != "📊 signal block" {
		t.Errorf("payload = %+v", gotBody)
	}
}

func TestTelegramSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("token123")
	n.baseURL = srv.URL

	if err := n.Send(context.Background(), "42", "text"); err == nil {
		t.Error("non-200 status did not error")
	}
}

func TestTelegramSend_NotConfigured(t *testing.T) {
	n := NewTelegramNotifier("")
	if err := n.Send(context.Background(), "42", "text"); err != apperrors.ErrNotConfigured {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
