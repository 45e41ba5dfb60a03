package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kriselko/backend/internal/domain"
	"github.com/kriselko/backend/internal/ports"
	"github.com/kriselko/backend/pkg/metrics"
)

// Проверка, что Notifier удовлетворяет интерфейсу Notifier.
var _ ports.Notifier = (*Notifier)(nil)

const defaultAPIURL = "https://api.telegram.org"

// Config — параметры бота. Пустые BotToken/ChatID не ошибка:
// уведомления деградируют до no-op с предупреждением в лог.
type Config struct {
	APIURL   string
	BotToken string
	ChatID   string
	Timeout  time.Duration
}

// Notifier — отправка алерта о новом заказе в Telegram-чат менеджера.
// Один POST на заказ, без ретраев и очереди.
type Notifier struct {
	httpClient *http.Client
	apiURL     string
	botToken   string
	chatID     string
	log        ports.Logger
}

// NewNotifier — конструктор.
func NewNotifier(cfg Config, log ports.Logger) *Notifier {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Notifier{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		log:        log,
	}
}

// sendMessageRequest — тело запроса Bot API sendMessage.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Notify — шлёт сообщение о заказе. При незаполненной конфигурации —
// предупреждение в лог и nil: витрина не должна зависеть от бота.
func (n *Notifier) Notify(ctx context.Context, order *domain.Order) error {
	if n.botToken == "" || n.chatID == "" {
		metrics.Notifications.WithLabelValues("skipped").Inc()
		n.log.Warnf(ctx, "telegram notification skipped: TG_BOT_TOKEN or TG_CHAT_ID is not configured")
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:                n.chatID,
		Text:                  formatMessage(order),
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.Notifications.WithLabelValues("failed").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram api status %d: %s", resp.StatusCode, snippet)
	}

	metrics.Notifications.WithLabelValues("sent").Inc()
	n.log.Infof(ctx, "telegram notification sent order_id=%d", order.ID)
	return nil
}

// formatMessage — Markdown-сообщение в формате исходной витрины:
// номер заказа, клиент, телефон ссылкой tel:, город, отделение, товар.
func formatMessage(order *domain.Order) string {
	return fmt.Sprintf(`
🛒 *НОВЕ ЗАМОВЛЕННЯ №%d!*
---
*🧑 Клієнт:* %s
*📞 Телефон:* [%s](tel:%s)
*📍 Місто:* %s
*📦 Відділення НП:* %s
*🪑 Товар:* %s (%s)
`,
		order.ID, order.Name, order.Phone, order.Phone,
		order.City, order.Warehouse, order.Chair, order.Size,
	)
}
