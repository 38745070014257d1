package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/okuznetsova/coffeepoint-bot/config"
	"github.com/okuznetsova/coffeepoint-bot/flow"
	"github.com/okuznetsova/coffeepoint-bot/models"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func strPtr(s string) *string {
	return &s
}

func TestUpsertUser(t *testing.T) {
	db := setupOrderTestDB(t)

	user := &models.User{
		ID:        42,
		Username:  strPtr("anna_k"),
		FirstName: strPtr("Анна"),
	}
	require.NoError(t, UpsertUser(user))

	var first models.User
	require.NoError(t, db.First(&first, "user_id = ?", 42).Error)
	assert.Equal(t, "anna_k", *first.Username)
	assert.False(t, first.CreatedAt.IsZero())

	// Repeat contact with changed profile data overwrites the profile
	// but keeps the first-contact timestamp.
	require.NoError(t, UpsertUser(&models.User{
		ID:        42,
		Username:  strPtr("anna_renamed"),
		FirstName: strPtr("Анна"),
		LastName:  strPtr("К."),
	}))

	var second models.User
	require.NoError(t, db.First(&second, "user_id = ?", 42).Error)
	assert.Equal(t, "anna_renamed", *second.Username)
	assert.Equal(t, "К.", *second.LastName)
	assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Millisecond,
		"created_at must be preserved from first contact")

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSaveOrderWithMilkAndAddons(t *testing.T) {
	db := setupOrderTestDB(t)
	require.NoError(t, UpsertUser(&models.User{ID: 42}))

	draft := &flow.Draft{
		Category:   "Классика",
		Drink:      "Капучино",
		SizeML:     350,
		Milk:       strPtr("Овсяное"),
		Addons:     []string{"Сироп", "Маршмеллоу"},
		PickupTime: "14:20",
	}

	orderID, err := SaveOrder(42, draft)
	require.NoError(t, err)
	assert.NotZero(t, orderID)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.EqualValues(t, 42, order.UserID)
	assert.Equal(t, "Классика", order.Category)
	assert.Equal(t, "Капучино", order.Drink)
	assert.Equal(t, 350, order.SizeML)
	require.NotNil(t, order.Milk)
	assert.Equal(t, "Овсяное", *order.Milk)
	require.NotNil(t, order.Addons)
	assert.Equal(t, "Сироп, Маршмеллоу", *order.Addons, "add-ons are joined in selection order")
	assert.Equal(t, "14:20", order.PickupTime)
	assert.Equal(t, models.StatusNew, order.Status)
}

func TestSaveOrderWithoutOptions(t *testing.T) {
	db := setupOrderTestDB(t)
	require.NoError(t, UpsertUser(&models.User{ID: 42}))

	draft := &flow.Draft{
		Category:   "Чай",
		Drink:      "Чёрный чай",
		SizeML:     450,
		PickupTime: flow.PickupASAP,
	}

	orderID, err := SaveOrder(42, draft)
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Nil(t, order.Milk, "non-milk drink persists NULL milk")
	assert.Nil(t, order.Addons, "no add-ons persists NULL")
}

func TestSaveOrderIDsStrictlyIncrease(t *testing.T) {
	setupOrderTestDB(t)
	require.NoError(t, UpsertUser(&models.User{ID: 42}))

	draft := &flow.Draft{
		Category:   "Классика",
		Drink:      "Американо",
		SizeML:     250,
		PickupTime: flow.PickupASAP,
	}

	var last uint
	for i := 0; i < 3; i++ {
		id, err := SaveOrder(42, draft)
		require.NoError(t, err)
		assert.Greater(t, id, last, "order ids must strictly increase")
		last = id
	}
}

func TestSaveOrderStorageFault(t *testing.T) {
	db := setupOrderTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Order{}))

	draft := &flow.Draft{
		Category:   "Классика",
		Drink:      "Американо",
		SizeML:     250,
		PickupTime: flow.PickupASAP,
	}

	_, err := SaveOrder(42, draft)
	var persistence *PersistenceError
	require.ErrorAs(t, err, &persistence)
}

func TestFinalizeOrderNotifiesStaffAfterSave(t *testing.T) {
	setupOrderTestDB(t)
	require.NoError(t, UpsertUser(&models.User{ID: 42}))

	sender := NewMockSender()
	notifier := NewNotifier(sender, -100500)

	draft := &flow.Draft{
		Category:   "Классика",
		Drink:      "Капучино",
		SizeML:     350,
		Milk:       strPtr("Овсяное"),
		Addons:     []string{"Сироп"},
		PickupTime: flow.PickupASAP,
	}

	orderID, err := FinalizeOrder(42, "Анна (@anna_k)", draft, notifier)
	require.NoError(t, err)

	messages := sender.Messages()
	require.Len(t, messages, 1, "exactly one staff message per finalized order")
	assert.EqualValues(t, -100500, messages[0].ChatID)
	assert.Contains(t, messages[0].Text, "№ <b>1</b>")
	assert.Contains(t, messages[0].Text, "Анна (@anna_k)")
	assert.Contains(t, messages[0].Text, "Капучино")
	assert.Contains(t, messages[0].Text, "Овсяное")
	assert.Contains(t, messages[0].Text, "Сироп")
	assert.EqualValues(t, 1, orderID)
}

func TestFinalizeOrderSaveFailureSuppressesNotification(t *testing.T) {
	db := setupOrderTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Order{}))

	sender := NewMockSender()
	notifier := NewNotifier(sender, -100500)

	draft := &flow.Draft{
		Category:   "Классика",
		Drink:      "Американо",
		SizeML:     250,
		PickupTime: flow.PickupASAP,
	}

	_, err := FinalizeOrder(42, "Анна", draft, notifier)
	var persistence *PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Empty(t, sender.Messages(), "a failed save must not notify staff")
}

func TestRecentOrders(t *testing.T) {
	setupOrderTestDB(t)
	require.NoError(t, UpsertUser(&models.User{ID: 42}))

	drinks := []string{"Американо", "Капучино", "Латте"}
	for _, d := range drinks {
		_, err := SaveOrder(42, &flow.Draft{
			Category:   "Классика",
			Drink:      d,
			SizeML:     250,
			PickupTime: flow.PickupASAP,
		})
		require.NoError(t, err)
	}

	orders, err := RecentOrders(2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Латте", orders[0].Drink, "newest first")
	assert.Equal(t, "Капучино", orders[1].Drink)
}
