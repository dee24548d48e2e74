package notify

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"catering-backend/logging"
)

// TelegramSink pushes admin events to a Telegram chat so the owner sees new
// orders without keeping the dashboard open.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

func (t *TelegramSink) Send(event string, data map[string]any) {
	msg := tgbotapi.NewMessage(t.chatID, formatEvent(event, data))
	if _, err := t.bot.Send(msg); err != nil {
		logging.L().Warn("telegram send failed", zap.String("event", event), zap.Error(err))
	}
}

func formatEvent(event string, data map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", event)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, data[k])
	}
	return b.String()
}
