package reminder

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/quizmind/internal/spacedrep"
)

// TelegramConfig holds the bot credentials for Telegram reminders.
type TelegramConfig struct {
	Token  string
	ChatID int64

	// APIEndpoint overrides the Bot API URL format (tgbotapi.APIEndpoint).
	APIEndpoint string
}

// TelegramConfigFromEnv reads QUIZMIND_TELEGRAM_TOKEN and
// QUIZMIND_TELEGRAM_CHAT_ID.
func TelegramConfigFromEnv() (TelegramConfig, error) {
	cfg := TelegramConfig{Token: os.Getenv("QUIZMIND_TELEGRAM_TOKEN")}
	if cfg.Token == "" {
		return cfg, fmt.Errorf("QUIZMIND_TELEGRAM_TOKEN is required")
	}
	raw := os.Getenv("QUIZMIND_TELEGRAM_CHAT_ID")
	if raw == "" {
		return cfg, fmt.Errorf("QUIZMIND_TELEGRAM_CHAT_ID is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return cfg, fmt.Errorf("invalid QUIZMIND_TELEGRAM_CHAT_ID %q: %w", raw, err)
	}
	cfg.ChatID = id
	return cfg, nil
}

// TelegramNotifier sends due reviews as a Telegram message.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects to the Bot API. It fails if the token is
// rejected.
func NewTelegramNotifier(cfg TelegramConfig) (*TelegramNotifier, error) {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: cfg.ChatID}, nil
}

func (n *TelegramNotifier) NotifyDue(learner string, due []spacedrep.DueReview) error {
	msg := tgbotapi.NewMessage(n.chatID, telegramText(learner, due))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram reminder: %w", err)
	}
	return nil
}

func telegramText(learner string, due []spacedrep.DueReview) string {
	var b strings.Builder
	if len(due) == 1 {
		fmt.Fprintf(&b, "%s, 1 topic is due for review:\n", learner)
	} else {
		fmt.Fprintf(&b, "%s, %d topics are due for review:\n", learner, len(due))
	}
	for _, d := range due {
		fmt.Fprintf(&b, "• %s (%s)\n", d.Topic, Overdue(d.DueInDays))
	}
	b.WriteString("Run `quizmind recommend` to pick where to start.")
	return b.String()
}
