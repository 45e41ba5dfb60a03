package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/telegram"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Infof(context.Context, string, ...any) {}
func (l *recordingLogger) Warnf(_ context.Context, format string, _ ...any) {
	l.warnings = append(l.warnings, format)
}
func (l *recordingLogger) Errorf(context.Context, string, ...any) {}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:        42,
		Name:      "Олена",
		Phone:     "+380501234567",
		City:      "Київ",
		Warehouse: "Відділення №1: вул. Барвінкова, 24",
		Chair:     "Крісло «Комфорт»",
		Size:      "M",
		Status:    domain.StatusNew,
	}
}

func TestNotify_SendsMarkdownMessage(t *testing.T) {
	var gotPath string
	var gotBody struct {
		ChatID                string `json:"chat_id"`
		Text                  string `json:"text"`
		ParseMode             string `json:"parse_mode"`
		DisableWebPagePreview bool   `json:"disable_web_page_preview"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	log := &recordingLogger{}
	n := telegram.NewNotifier(telegram.Config{
		APIURL:   srv.URL,
		BotToken: "123:abc",
		ChatID:   "-100200300",
	}, log)

	if err := n.Notify(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Fatalf("wrong bot api path: %q", gotPath)
	}
	if gotBody.ChatID != "-100200300" || gotBody.ParseMode != "Markdown" || !gotBody.DisableWebPagePreview {
		t.Fatalf("unexpected request: %+v", gotBody)
	}

	for _, fragment := range []string{
		"НОВЕ ЗАМОВЛЕННЯ №42",
		"*🧑 Клієнт:* Олена",
		"[+380501234567](tel:+380501234567)",
		"*📍 Місто:* Київ",
		"Відділення №1",
		"Крісло «Комфорт» (M)",
	} {
		if !strings.Contains(gotBody.Text, fragment) {
			t.Fatalf("message lacks %q:\n%s", fragment, gotBody.Text)
		}
	}
}

func TestNotify_SkipsWhenUnconfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unconfigured notifier must not call the api")
	}))
	defer srv.Close()

	log := &recordingLogger{}
	n := telegram.NewNotifier(telegram.Config{APIURL: srv.URL}, log)

	// Отсутствие токена/чата — деградация до no-op, не ошибка.
	if err := n.Notify(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(log.warnings) == 0 {
		t.Fatal("expected a warning about missing configuration")
	}
}

func TestNotify_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"Bad Request: chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	n := telegram.NewNotifier(telegram.Config{
		APIURL:   srv.URL,
		BotToken: "123:abc",
		ChatID:   "badchat",
	}, &recordingLogger{})

	err := n.Notify(context.Background(), sampleOrder())
	if err == nil || !strings.Contains(err.Error(), "telegram api status 400") {
		t.Fatalf("want telegram api error, got %v", err)
	}
}
