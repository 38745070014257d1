package services

import (
	"fmt"
	"strings"

	"github.com/okuznetsova/coffeepoint-bot/flow"
)

// Sender delivers a text message to a chat. The Telegram bot implements
// it in production; tests use MockSender.
type Sender interface {
	SendText(chatID int64, text string) error
}

// Notifier formats finalized orders and delivers the staff summary to
// the fixed staff chat.
type Notifier struct {
	sender      Sender
	staffChatID int64
}

// NewNotifier creates a notifier delivering to the given staff chat.
func NewNotifier(sender Sender, staffChatID int64) *Notifier {
	return &Notifier{sender: sender, staffChatID: staffChatID}
}

// NotifyStaff sends one staff summary message for a finalized order.
func (n *Notifier) NotifyStaff(orderID uint, userDisplay string, draft *flow.Draft) error {
	return n.sender.SendText(n.staffChatID, RenderStaffSummary(orderID, userDisplay, draft))
}

// RenderPreview builds the user-facing confirmation text for a draft.
// Milk and add-on lines are omitted when not applicable.
func RenderPreview(draft *flow.Draft) string {
	lines := []string{
		"🧾 <b>Проверь заказ</b>",
		"",
		fmt.Sprintf("Категория: <b>%s</b>", draft.Category),
		fmt.Sprintf("Напиток: <b>%s</b>", draft.Drink),
		fmt.Sprintf("Объём: <b>%d мл</b>", draft.SizeML),
	}
	lines = append(lines, optionLines(draft)...)
	lines = append(lines,
		fmt.Sprintf("Время: <b>%s</b>", draft.PickupTime),
		"",
		"Оплата на месте (картой/наличными).",
	)
	return strings.Join(lines, "\n")
}

// RenderStaffSummary builds the staff-channel text for a finalized order.
func RenderStaffSummary(orderID uint, userDisplay string, draft *flow.Draft) string {
	lines := []string{
		"🆕 <b>Новый предзаказ</b>",
		"",
		fmt.Sprintf("№ <b>%d</b>", orderID),
		fmt.Sprintf("Клиент: <b>%s</b>", userDisplay),
		fmt.Sprintf("Категория: <b>%s</b>", draft.Category),
		fmt.Sprintf("Напиток: <b>%s</b>", draft.Drink),
		fmt.Sprintf("Объём: <b>%d мл</b>", draft.SizeML),
	}
	lines = append(lines, optionLines(draft)...)
	lines = append(lines, fmt.Sprintf("Время: <b>%s</b>", draft.PickupTime))
	return strings.Join(lines, "\n")
}

func optionLines(draft *flow.Draft) []string {
	var lines []string
	if draft.Milk != nil {
		lines = append(lines, fmt.Sprintf("Молоко: <b>%s</b>", *draft.Milk))
	}
	if len(draft.Addons) > 0 {
		lines = append(lines, fmt.Sprintf("Добавки: <b>%s</b>", strings.Join(draft.Addons, ", ")))
	}
	return lines
}
