package models

import "time"

// User represents a Telegram user who has contacted the bot.
// The primary key is the Telegram user id, so repeat contacts
// upsert the same row. Profile fields are whatever Telegram
// reported last; any of them may be absent.
type User struct {
	ID        int64     `gorm:"column:user_id;primaryKey" json:"user_id"` // Telegram user id
	Username  *string   `json:"username"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	CreatedAt time.Time `json:"created_at"` // first contact, preserved on upsert
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
