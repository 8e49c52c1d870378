package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
	"github.com/asadbek002/checkin-bot/internal/pkg/validator"
)

// Bot is the chat transport: it turns Telegram updates into workflow calls
// and workflow results into replies. One update is handled to completion
// before the next is dispatched, so per-user interactions never overlap.
type Bot struct {
	api *tgbotapi.BotAPI
	svc attendance.Service
}

func NewBot(api *tgbotapi.BotAPI, svc attendance.Service) *Bot {
	return &Bot{api: api, svc: svc}
}

// Run long-polls for updates until the context is cancelled. Handler
// failures are logged and never stop the loop.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)
	slog.Info("bot polling started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			slog.Info("bot polling stopped")
			return
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Location != nil:
		b.handleLocation(ctx, msg)
	case msg.Text == checkInKeyword:
		// Button tapped but no location payload attached.
		b.reply(msg.Chat.ID, msgSendLocation)
	case msg.Text == checkOutKeyword:
		b.handleCheckOut(ctx, msg)
	case msg.Text != "":
		b.handleReason(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "history":
		b.handleHistory(ctx, msg)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation(checkInKeyword)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(checkOutKeyword)),
	)
	keyboard.ResizeKeyboard = true

	text := fmt.Sprintf(
		"Salom, %s!\nIshga kelganligingizni tasdiqlash uchun 'Kelish' tugmasini bosing va joylashuvingizni yuboring:",
		msg.From.FirstName,
	)
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyMarkup = keyboard
	b.send(reply)
}

func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message) {
	result, err := b.svc.CheckIn(ctx, attendance.CheckInRequest{
		UserID:    msg.From.ID,
		UserName:  msg.From.FirstName,
		Latitude:  msg.Location.Latitude,
		Longitude: msg.Location.Longitude,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrOutsideGeofence) {
			b.reply(msg.Chat.ID, msgOutsideOffice)
			return
		}
		slog.Error("check-in failed", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, msgFailure)
		return
	}

	switch result.Outcome {
	case attendance.OutcomeOnTime:
		b.reply(msg.Chat.ID, msgOnTime)
	case attendance.OutcomeBlocked:
		b.reply(msg.Chat.ID, msgBlocked)
	case attendance.OutcomeAwaitingReason:
		b.reply(msg.Chat.ID, msgAskReason)
	}
}

func (b *Bot) handleReason(ctx context.Context, msg *tgbotapi.Message) {
	event, err := b.svc.SubmitReason(ctx, msg.From.ID, msg.Text)
	if err != nil {
		slog.Error("failed to record reason", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, msgFailure)
		return
	}
	if event == nil {
		// Nothing pending for this user; stay silent.
		return
	}
	b.reply(msg.Chat.ID, msgReasonSaved)
}

func (b *Bot) handleCheckOut(ctx context.Context, msg *tgbotapi.Message) {
	_, err := b.svc.CheckOut(ctx, attendance.CheckOutRequest{
		UserID:   msg.From.ID,
		UserName: msg.From.FirstName,
	})
	if err != nil {
		slog.Error("check-out failed", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, msgFailure)
		return
	}
	b.reply(msg.Chat.ID, msgCheckedOut)
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())

	var date *time.Time
	if args != "" {
		parsed, ok := validator.IsValidDate(args)
		if !ok {
			b.reply(msg.Chat.ID, msgBadDate)
			return
		}
		date = &parsed
	}

	events, err := b.svc.History(ctx, msg.From.ID, date)
	if err != nil {
		slog.Error("history query failed", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, msgFailure)
		return
	}
	b.reply(msg.Chat.ID, formatHistory(events))
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		slog.Error("failed to send telegram message", "error", err)
	}
}
