package main

import (
	"testing"
	"time"

	"billsmith/config"
	"billsmith/database"
	"billsmith/models"
	"billsmith/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func setupReminderDB(t *testing.T, now time.Time) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	oldDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = oldDB
		sqlDB.Close()
	})

	cat, err := service.CreateCategory(db, models.CategoryCreate{Name: "Electricity"})
	require.NoError(t, err)
	due := models.DateOf(now.AddDate(0, 0, 2))
	bill := models.Bill{
		CategoryID: cat.ID,
		Vendor:     "Power Co",
		AmountDue:  decimal.RequireFromString("42.50"),
		DueDate:    &due,
		FilePath:   "/tmp/power.pdf",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&bill).Error)
}

func TestSendReminder_EmailDisabled(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	setupReminderDB(t, now)

	cfg := &config.Config{
		Email:    config.EmailConfig{Enabled: false},
		Reminder: config.ReminderConfig{Days: 7},
	}
	// 未启用邮件时只写日志，不能失败
	assert.NoError(t, sendReminder(cfg, now))
}

func TestSendReminder_EmailEnabledWithoutRecipient(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	setupReminderDB(t, now)

	cfg := &config.Config{
		Email:    config.EmailConfig{Enabled: true},
		Reminder: config.ReminderConfig{Days: 7},
	}
	err := sendReminder(cfg, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email.to")
}

func TestSendReminder_NothingDue(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	setupReminderDB(t, now)

	// 邮件配置不完整也不会触发发送
	cfg := &config.Config{
		Email:    config.EmailConfig{Enabled: true},
		Reminder: config.ReminderConfig{Days: 1},
	}
	assert.NoError(t, sendReminder(cfg, now))
}
