package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "orders", Order{}.TableName())
}

// The schema must migrate additively: a database created before the
// milk/addons columns existed gains them without losing rows.
func TestOrderColumnsMigrateAdditively(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// Old layout, before milk/addons.
	type oldOrder struct {
		ID         uint   `gorm:"primaryKey"`
		UserID     int64  `gorm:"not null;index"`
		Category   string `gorm:"not null"`
		Drink      string `gorm:"not null"`
		SizeML     int    `gorm:"not null"`
		PickupTime string `gorm:"not null"`
		Status     string `gorm:"not null;default:'new'"`
	}
	require.NoError(t, db.Table("orders").AutoMigrate(&oldOrder{}))
	require.NoError(t, db.Table("orders").Create(&oldOrder{
		UserID:     42,
		Category:   "Чай",
		Drink:      "Чёрный чай",
		SizeML:     350,
		PickupTime: "09:40",
		Status:     StatusNew,
	}).Error)

	// Current layout adds the nullable columns.
	require.NoError(t, db.AutoMigrate(&Order{}))

	var migrated Order
	require.NoError(t, db.First(&migrated).Error)
	assert.Equal(t, "Чёрный чай", migrated.Drink)
	assert.Nil(t, migrated.Milk)
	assert.Nil(t, migrated.Addons)
}
