package service

import (
	"testing"
	"time"

	"billsmith/database"
	"billsmith/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// setupTestDB 创建内存 sqlite 数据库并迁移表结构
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	// 内存库每个连接都是独立的数据库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	cat, err := CreateCategory(db, models.CategoryCreate{Name: name})
	require.NoError(t, err)
	return cat
}

// billFixture 测试账单，CreatedAt 为零时使用当前时间
type billFixture struct {
	CategoryID  uint
	Vendor      string
	Invoice     string
	Account     string
	Amount      string
	DueDate     *models.Date
	NeedsReview bool
	CreatedAt   time.Time
	FilePath    string
}

func insertBill(t *testing.T, db *gorm.DB, f billFixture) *models.Bill {
	t.Helper()
	if f.Vendor == "" {
		f.Vendor = "Vendor"
	}
	if f.Amount == "" {
		f.Amount = "10.00"
	}
	if f.FilePath == "" {
		f.FilePath = "/tmp/bill.pdf"
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	bill := &models.Bill{
		CategoryID:  f.CategoryID,
		Vendor:      f.Vendor,
		DueDate:     f.DueDate,
		AmountDue:   decimal.RequireFromString(f.Amount),
		FilePath:    f.FilePath,
		NeedsReview: f.NeedsReview,
		CreatedAt:   f.CreatedAt.UTC(),
		UpdatedAt:   f.CreatedAt.UTC(),
	}
	if f.Invoice != "" {
		bill.InvoiceNumber = &f.Invoice
	}
	if f.Account != "" {
		bill.AccountNumber = &f.Account
	}
	require.NoError(t, db.Omit(clause.Associations).Create(bill).Error)
	return bill
}

func date(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(year, month, day)
	return &d
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
