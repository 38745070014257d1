package models

import "time"

// Order statuses. Only "new" is assigned by this service; later
// statuses belong to whatever staff tooling picks orders up.
const StatusNew = "new"

// Order represents a finalized pre-order. Rows are append-only:
// once written they are never updated by the bot.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"` // foreign key to users table
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	Category   string    `gorm:"not null" json:"category"`
	Drink      string    `gorm:"not null" json:"drink"`
	SizeML     int       `gorm:"not null" json:"size_ml"`
	Milk       *string   `json:"milk"`   // nullable, nil for drinks that take no milk
	Addons     *string   `json:"addons"` // nullable, comma-joined add-on names
	PickupTime string    `gorm:"not null" json:"pickup_time"`
	Status     string    `gorm:"not null;default:'new'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
