package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/okuznetsova/coffeepoint-bot/config"
	"github.com/okuznetsova/coffeepoint-bot/flow"
	"github.com/okuznetsova/coffeepoint-bot/models"
)

// PersistenceError wraps a storage-layer fault. It is non-retryable and
// must be surfaced so the user learns the order did not go through.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UpsertUser inserts or refreshes a user profile. On repeat contact the
// profile fields are overwritten with whatever Telegram reports now,
// while created_at keeps the first-contact timestamp.
func UpsertUser(user *models.User) error {
	db := config.GetDB()
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "first_name", "last_name",
		}),
	}).Create(user).Error
	if err != nil {
		return &PersistenceError{Op: "upsert user", Err: err}
	}
	return nil
}

// SaveOrder appends a finalized draft as an immutable order row and
// returns the assigned order id. Ids are allocated by the database
// autoincrement, so they stay unique and strictly increasing even when
// different sessions finalize at the same time. The draft is stored as
// given; validation happened in the flow.
func SaveOrder(userID int64, draft *flow.Draft) (uint, error) {
	order := models.Order{
		UserID:     userID,
		Category:   draft.Category,
		Drink:      draft.Drink,
		SizeML:     draft.SizeML,
		PickupTime: draft.PickupTime,
		Status:     models.StatusNew,
	}
	if draft.Milk != nil {
		milk := *draft.Milk
		order.Milk = &milk
	}
	if len(draft.Addons) > 0 {
		joined := strings.Join(draft.Addons, ", ")
		order.Addons = &joined
	}

	if err := config.GetDB().Create(&order).Error; err != nil {
		return 0, &PersistenceError{Op: "save order", Err: err}
	}
	return order.ID, nil
}

// FinalizeOrder persists a confirmed draft and then sends the staff
// notification, strictly in that order: a failed save aborts before any
// notification goes out. A failed notification does not undo the save —
// the order is already on record and staff can see it in the admin
// listing — so it is logged and the order id is still returned.
func FinalizeOrder(userID int64, userDisplay string, draft *flow.Draft, notifier *Notifier) (uint, error) {
	orderID, err := SaveOrder(userID, draft)
	if err != nil {
		return 0, err
	}
	if err := notifier.NotifyStaff(orderID, userDisplay, draft); err != nil {
		zap.S().Errorw("Failed to notify staff", "order_id", orderID, "error", err)
	}
	return orderID, nil
}

// RecentOrders returns up to limit most recent orders, newest first.
// Used by the staff admin API.
func RecentOrders(limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var orders []models.Order
	err := config.GetDB().Order("id DESC").Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}
