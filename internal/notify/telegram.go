package notify

import (
	"context"
	"fmt"

	"team-pulse/internal/model"
	pkgLog "team-pulse/pkg/log"
	"team-pulse/pkg/telegram"
)

// TelegramNotifier posts a one-line digest summary to a Telegram chat after
// each run. Full report rendering lives outside this service.
type TelegramNotifier struct {
	bot    *telegram.Bot
	chatID int64
	l      pkgLog.Logger
}

// NewTelegramNotifier creates a notifier for the given chat.
func NewTelegramNotifier(bot *telegram.Bot, chatID int64, l pkgLog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		l:      l,
	}
}

// SendDigest implements pulse.Notifier.
func (n *TelegramNotifier) SendDigest(ctx context.Context, report model.DailyReport) error {
	text := fmt.Sprintf("Pulse %s: %d events, %d correlations, %d action items, %d contributors",
		report.Date, report.TotalEvents, report.CorrelationCount,
		report.ActionItemCount, report.UniqueContributors)

	if err := n.bot.SendMessage(ctx, n.chatID, text); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	n.l.Infof(ctx, "digest for %s sent to chat %d", report.Date, n.chatID)
	return nil
}
