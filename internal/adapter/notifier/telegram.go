package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wvsbeta/dumpkeeper/internal/config"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	app    string
}

func NewTelegram(cfg *config.TelegramConfig, appName string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
		app:    appName,
	}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, report domain.RunReport) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatReport(t.app, report))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}

// FormatReport renders a run report as a short plain-text message.
func FormatReport(app string, r domain.RunReport) string {
	var b strings.Builder

	switch {
	case r.Err != nil:
		fmt.Fprintf(&b, "❌ %s backup failed\n\n", app)
	case r.Uploaded:
		fmt.Fprintf(&b, "✅ %s backup uploaded\n\n", app)
	default:
		fmt.Fprintf(&b, "✅ %s backup created\n\n", app)
	}

	fmt.Fprintf(&b, "🆔 Run: %s\n", r.RunID)
	if r.Dump.File.Name != "" {
		fmt.Fprintf(&b, "📁 File: %s\n", r.Dump.File.Name)
		fmt.Fprintf(&b, "📊 Size: %.2f MB\n", float64(r.Dump.File.Size)/(1024*1024))
	}
	if r.Dump.Failed() {
		fmt.Fprintf(&b, "⚠️ Dump exit status: %d\n", r.Dump.ExitCode)
	}
	if len(r.Deleted) > 0 {
		fmt.Fprintf(&b, "🗑 Rotated: %d old backup(s)\n", len(r.Deleted))
	}
	switch {
	case r.Uploaded:
		fmt.Fprintf(&b, "☁️ Uploaded as: %s\n", r.RemoteName)
	case !r.UploadDue:
		b.WriteString("☁️ Upload: not due\n")
	}
	fmt.Fprintf(&b, "🕐 Time: %s (%s)", r.Started.UTC().Format("2006-01-02 15:04"), r.Duration.Round(time.Second))
	if r.Err != nil {
		fmt.Fprintf(&b, "\n\n%v", r.Err)
	}

	return b.String()
}
