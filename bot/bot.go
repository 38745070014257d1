// Package bot adapts Telegram updates onto the ordering flow: it
// translates messages and callback queries into flow events, renders
// the flow's prompts as keyboards, and runs the finalize pipeline
// (persist, notify staff, confirm to the user — in that order).
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/okuznetsova/coffeepoint-bot/flow"
	"github.com/okuznetsova/coffeepoint-bot/metrics"
	"github.com/okuznetsova/coffeepoint-bot/models"
	"github.com/okuznetsova/coffeepoint-bot/services"
)

const (
	greetingText = "Привет! ☕\nЗдесь можно быстро оформить предзаказ и забрать без очереди."
	howText      = "1) Нажимаешь «Начать заказ»\n" +
		"2) Выбираешь напиток, объём и доп. опции\n" +
		"3) Выбираешь время\n" +
		"4) Забираешь готовый напиток ❤️"
	cancelledText  = "Ок, отменил. Если что — начни заново 🙂"
	saveFailedText = "😔 Не получилось сохранить заказ. Попробуй подтвердить ещё раз чуть позже."
	backToMenuText = "Ок, вернулись в меню."
)

// Bot is the Telegram transport adapter around the ordering flow.
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *flow.SessionStore
	notifier *services.Notifier
}

// New creates the bot and its staff notifier.
func New(api *tgbotapi.BotAPI, sessions *flow.SessionStore, staffChatID int64) *Bot {
	b := &Bot{api: api, sessions: sessions}
	b.notifier = services.NewNotifier(b, staffChatID)
	return b
}

// SendText delivers an HTML-formatted text message. Implements
// services.Sender.
func (b *Bot) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

// Run polls for updates until the context is cancelled. Updates are
// handled one at a time on this goroutine, which is what keeps each
// session's events serialized.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	zap.S().Infof("Bot started as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(update)
			metrics.ActiveSessions.Set(float64(b.sessions.Len()))
		}
	}
}

// HandleUpdate dispatches a single Telegram update.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(m *tgbotapi.Message) {
	if m.From == nil {
		return
	}
	chatID := m.Chat.ID

	if m.IsCommand() && m.Command() == "start" {
		if err := services.UpsertUser(profileFrom(m.From)); err != nil {
			zap.S().Errorw("Failed to upsert user profile", "user_id", m.From.ID, "error", err)
		}
		b.sessions.Get(m.From.ID).Reset()
		b.sendWithKeyboard(chatID, greetingText, mainKeyboard())
		return
	}

	if strings.TrimSpace(m.Text) == btnHow {
		b.sendWithKeyboard(chatID, howText, mainKeyboard())
		return
	}

	session := b.sessions.Get(m.From.ID)
	ev, ok := messageEvent(session.State, m.Text)
	if !ok {
		return
	}
	b.apply(chatID, m.From, session, ev, nil)
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		zap.S().Debugw("Failed to ack callback", "error", err)
	}
	if cq.Message == nil {
		return
	}

	ev, ok := callbackEvent(cq.Data)
	if !ok {
		return
	}
	session := b.sessions.Get(cq.From.ID)
	b.apply(cq.Message.Chat.ID, cq.From, session, ev, cq)
}

// apply runs one event through the session's state machine and renders
// the outcome.
func (b *Bot) apply(chatID int64, from *tgbotapi.User, session *flow.Session, ev flow.Event, cq *tgbotapi.CallbackQuery) {
	metrics.EventsProcessedTotal.WithLabelValues(ev.Kind.String()).Inc()

	res, err := session.Apply(ev)
	if err != nil {
		if errors.Is(err, flow.ErrEventNotAllowed) {
			// Stale keyboard press, nothing to say.
			return
		}
		metrics.RejectedInputsTotal.Inc()
		b.sendHint(chatID, session, err)
		return
	}

	if res.Prompt == flow.PromptFinalize {
		b.finalize(chatID, from, session, res.Draft)
		return
	}

	overrideText := ""
	if ev.Kind == flow.EventConfirmNo {
		overrideText = cancelledText
	}
	b.render(chatID, res, cq, overrideText)
}

// sendHint re-presents the current step with the error's user-facing
// hint, attaching the step's keyboard when it has one.
func (b *Bot) sendHint(chatID int64, session *flow.Session, err error) {
	hint := flow.UserHint(err)
	if hint == "" {
		hint = "Что-то пошло не так. Попробуй ещё раз."
	}

	msg := tgbotapi.NewMessage(chatID, hint)
	msg.ParseMode = tgbotapi.ModeHTML
	switch session.State {
	case flow.StateChoosingCategory:
		msg.ReplyMarkup = categoriesKeyboard()
	case flow.StateChoosingDrink:
		msg.ReplyMarkup = drinksKeyboard(session.Draft.Category)
	case flow.StateChoosingSize:
		msg.ReplyMarkup = sizesKeyboard(session.Draft.Drink)
	case flow.StateChoosingMilk:
		msg.ReplyMarkup = milkKeyboard(session.Draft.Milk)
	case flow.StateChoosingAddons:
		msg.ReplyMarkup = addonsKeyboard(session.Draft)
	}
	if _, err := b.api.Send(msg); err != nil {
		zap.S().Errorw("Failed to send hint", "chat_id", chatID, "error", err)
	}
}

// render turns a flow result into outbound messages and keyboards.
func (b *Bot) render(chatID int64, res flow.Result, cq *tgbotapi.CallbackQuery, overrideText string) {
	d := res.Draft

	switch res.Prompt {
	case flow.PromptMainMenu:
		text := backToMenuText
		if overrideText != "" {
			text = overrideText
		}
		b.sendWithKeyboard(chatID, text, mainKeyboard())

	case flow.PromptCategories:
		b.sendWithKeyboard(chatID, "Выбери категорию:", categoriesKeyboard())

	case flow.PromptDrinks:
		b.sendWithKeyboard(chatID,
			fmt.Sprintf("Категория: <b>%s</b>\nТеперь выбери напиток:", d.Category),
			drinksKeyboard(d.Category))

	case flow.PromptSizes:
		b.sendWithKeyboard(chatID,
			fmt.Sprintf("Ок, <b>%s</b>. Теперь выбери объём:", d.Drink),
			sizesKeyboard(d.Drink))

	case flow.PromptMilk:
		b.sendWithKeyboard(chatID,
			fmt.Sprintf("Объём: <b>%d мл</b>\nВыбери молоко:", d.SizeML),
			milkKeyboard(d.Milk))

	case flow.PromptAddons:
		b.sendWithKeyboard(chatID, "Добавки (если нужно):", addonsKeyboard(d))

	case flow.PromptAddonsRefresh:
		// Toggle: refresh the selector in place, no new message.
		if cq != nil && cq.Message != nil {
			edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cq.Message.MessageID, addonsKeyboard(d))
			if _, err := b.api.Send(edit); err != nil {
				zap.S().Debugw("Failed to refresh addon keyboard", "error", err)
			}
		}

	case flow.PromptTimeChoices:
		b.sendWithKeyboard(chatID, "Теперь выбери время:", timeKeyboard())

	case flow.PromptTypeTime:
		b.sendWithKeyboard(chatID,
			"Введи время в формате <b>HH:MM</b> (например 14:20).", backKeyboard())

	case flow.PromptConfirm:
		b.sendWithKeyboard(chatID, services.RenderPreview(d), confirmKeyboard())
	}
}

// finalize persists the confirmed draft, notifies staff, and confirms to
// the user — strictly in that order. A failed save aborts before the
// notification and leaves the session in Confirming with its draft, so
// the user can retry.
func (b *Bot) finalize(chatID int64, from *tgbotapi.User, session *flow.Session, draft *flow.Draft) {
	// The order row references the user row, and the user may never have
	// sent /start on this deployment. Upsert is idempotent.
	if err := services.UpsertUser(profileFrom(from)); err != nil {
		zap.S().Errorw("Failed to upsert user profile", "user_id", from.ID, "error", err)
	}

	orderID, err := services.FinalizeOrder(from.ID, displayName(from), draft, b.notifier)
	if err != nil {
		metrics.OrderSaveFailuresTotal.Inc()
		zap.S().Errorw("Failed to save order", "user_id", from.ID, "error", err)
		b.sendWithKeyboard(chatID, saveFailedText, confirmKeyboard())
		return
	}
	metrics.OrdersPlacedTotal.Inc()

	session.Complete()
	b.sendWithKeyboard(chatID, fmt.Sprintf(
		"✅ Принято! Заказ № <b>%d</b>\nВремя: <b>%s</b>\n\nОплата на месте 🙂",
		orderID, draft.PickupTime,
	), mainKeyboard())
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		zap.S().Errorw("Failed to send message", "chat_id", chatID, "error", err)
	}
}

// profileFrom maps Telegram user metadata onto the users row.
func profileFrom(from *tgbotapi.User) *models.User {
	return &models.User{
		ID:        from.ID,
		Username:  nilIfEmpty(from.UserName),
		FirstName: nilIfEmpty(from.FirstName),
		LastName:  nilIfEmpty(from.LastName),
	}
}

// displayName builds the staff-facing client name: full name plus
// @username when known.
func displayName(from *tgbotapi.User) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if from.UserName != "" {
		if name == "" {
			return "@" + from.UserName
		}
		name += " (@" + from.UserName + ")"
	}
	return name
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
