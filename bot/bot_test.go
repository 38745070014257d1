package bot

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okuznetsova/coffeepoint-bot/flow"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user tgbotapi.User
		want string
	}{
		{"full profile", tgbotapi.User{FirstName: "Анна", LastName: "К.", UserName: "anna_k"}, "Анна К. (@anna_k)"},
		{"no username", tgbotapi.User{FirstName: "Анна", LastName: "К."}, "Анна К."},
		{"first name only", tgbotapi.User{FirstName: "Анна", UserName: "anna_k"}, "Анна (@anna_k)"},
		{"username only", tgbotapi.User{UserName: "anna_k"}, "@anna_k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayName(&tt.user))
		})
	}
}

func TestProfileFrom(t *testing.T) {
	user := profileFrom(&tgbotapi.User{ID: 42, UserName: "anna_k", FirstName: "Анна"})

	assert.EqualValues(t, 42, user.ID)
	require.NotNil(t, user.Username)
	assert.Equal(t, "anna_k", *user.Username)
	require.NotNil(t, user.FirstName)
	assert.Equal(t, "Анна", *user.FirstName)
	assert.Nil(t, user.LastName, "absent profile fields stay NULL")
}

func TestCategoriesKeyboardLayout(t *testing.T) {
	kb := categoriesKeyboard()

	// Four categories, two per row, plus the back row.
	require.Len(t, kb.Keyboard, 3)
	assert.Len(t, kb.Keyboard[0], 2)
	assert.Len(t, kb.Keyboard[1], 2)
	require.Len(t, kb.Keyboard[2], 1)
	assert.Equal(t, btnBack, kb.Keyboard[2][0].Text)
}

func TestMilkKeyboardMarksSelection(t *testing.T) {
	milk := "Овсяное"
	kb := milkKeyboard(&milk)

	var marked []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if strings.HasPrefix(b.Text, "✅") {
				marked = append(marked, b.Text)
			}
		}
	}
	require.Len(t, marked, 1)
	assert.Equal(t, "✅ Овсяное", marked[0])
}

func TestAddonsKeyboardMarksSelected(t *testing.T) {
	draft := &flow.Draft{Addons: []string{"Сироп"}}
	kb := addonsKeyboard(draft)

	texts := map[string]bool{}
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			texts[b.Text] = true
		}
	}
	assert.True(t, texts["✅ Сироп"])
	assert.True(t, texts["Маршмеллоу"])
	assert.True(t, texts["➡️ Далее"])
}

func TestSizesKeyboardCallbackData(t *testing.T) {
	kb := sizesKeyboard("Флэт уайт")

	require.Len(t, kb.InlineKeyboard, 2)
	row := kb.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "250 мл", row[0].Text)
	require.NotNil(t, row[0].CallbackData)
	assert.Equal(t, "size:250", *row[0].CallbackData)
}
