package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/okuznetsova/coffeepoint-bot/catalog"
	"github.com/okuznetsova/coffeepoint-bot/flow"
)

// Reply-keyboard button labels. These double as the match targets for
// inbound text, so they must stay in sync with messageEvent.
const (
	btnBeginOrder = "☕ Начать заказ"
	btnHow        = "ℹ️ Как это работает"
	btnBack       = "⬅️ Назад"
)

// Callback-data prefixes for inline keyboards.
const (
	cbDrinkPrefix  = "drink:"
	cbSizePrefix   = "size:"
	cbMilkPrefix   = "milk:"
	cbAddonPrefix  = "addon:toggle:"
	cbAddonsDone   = "addon:done"
	cbTimeASAP     = "time:asap"
	cbTimeManual   = "time:manual"
	cbConfirmYes   = "confirm:yes"
	cbConfirmNo    = "confirm:no"
	cbBackPrefix   = "nav:"
	cbBackToCats   = "nav:back_to_categories"
	cbBackToDrinks = "nav:back_to_drinks"
	cbBackToSizes  = "nav:back_to_sizes"
	cbBackToPrev   = "nav:back_to_milk_or_sizes"
	cbBackToAddons = "nav:back_to_addons"
	cbBackToTime   = "nav:back_to_time"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBeginOrder)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnHow)),
	)
}

// categoriesKeyboard lays out the categories two per row, plus a back row.
func categoriesKeyboard() tgbotapi.ReplyKeyboardMarkup {
	cats := catalog.Categories()
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(cats); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(cats[i])}
		if i+1 < len(cats) {
			row = append(row, tgbotapi.NewKeyboardButton(cats[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)))
	return tgbotapi.NewReplyKeyboard(rows...)
}

func backKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
}

func drinksKeyboard(category string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range catalog.DrinksIn(category) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(d.Name, cbDrinkPrefix+d.Name),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnBack, cbBackToCats),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sizesKeyboard(drink string) tgbotapi.InlineKeyboardMarkup {
	sizes, _ := catalog.SizesFor(drink)
	var row []tgbotapi.InlineKeyboardButton
	for _, s := range sizes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d мл", s), fmt.Sprintf("%s%d", cbSizePrefix, s),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnBack, cbBackToDrinks),
		),
	)
}

// milkKeyboard marks the currently selected milk with a check mark.
func milkKeyboard(selected *string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range catalog.MilkOptions() {
		label := m
		if selected != nil && *selected == m {
			label = "✅ " + m
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbMilkPrefix+m),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnBack, cbBackToSizes),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// addonsKeyboard marks every selected add-on with a check mark.
func addonsKeyboard(draft *flow.Draft) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, a := range catalog.AddonOptions() {
		label := a
		if draft != nil && draft.HasAddon(a) {
			label = "✅ " + a
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbAddonPrefix+a),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Далее", cbAddonsDone),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnBack, cbBackToPrev),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func timeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Как можно быстрее", cbTimeASAP),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ввести время (HH:MM)", cbTimeManual),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnBack, cbBackToAddons),
		),
	)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", cbConfirmYes),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить", cbConfirmNo),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnBack, cbBackToTime),
		),
	)
}
