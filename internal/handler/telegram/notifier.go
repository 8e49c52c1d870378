package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/asadbek002/checkin-bot/internal/domain/notification"
)

type adminNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewAdminNotifier returns a Notifier that messages the configured
// administrator chat directly.
func NewAdminNotifier(api *tgbotapi.BotAPI, chatID int64) notification.Notifier {
	return &adminNotifier{api: api, chatID: chatID}
}

// NotifyLateArrival implements notification.Notifier.
func (n *adminNotifier) NotifyLateArrival(_ context.Context, userID int64, userName string) error {
	text := fmt.Sprintf("⚠️ %s (%d) kechikdi. Sababini kutyapmiz.", userName, userID)
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("failed to send admin notification: %w", err)
	}
	return nil
}
