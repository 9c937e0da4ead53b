package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"billsmith/config"
	"billsmith/database"
	"billsmith/models"
	"billsmith/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupMockDB 用 sqlmock 替换全局数据库，用于数据库出错的场景
func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

// setupTestDB 用内存 sqlite 替换全局数据库
func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testConfig(root string) *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Mode: "test", Port: "4242"},
		Storage:  config.StorageConfig{Root: root},
		Upload:   config.UploadConfig{MaxFileSizeMB: 1, AllowedTypes: []string{"pdf", "png", "jpg", "jpeg"}},
		Reminder: config.ReminderConfig{Days: 7},
	}
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	cat, err := service.CreateCategory(db, models.CategoryCreate{Name: name})
	require.NoError(t, err)
	return cat
}

func insertBill(t *testing.T, db *gorm.DB, bill models.Bill) *models.Bill {
	t.Helper()
	if bill.Vendor == "" {
		bill.Vendor = "Vendor"
	}
	if bill.AmountDue.IsZero() {
		bill.AmountDue = decimal.RequireFromString("10.00")
	}
	if bill.FilePath == "" {
		bill.FilePath = "/tmp/bill.pdf"
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	bill.UpdatedAt = bill.CreatedAt
	require.NoError(t, db.Omit(clause.Associations).Create(&bill).Error)
	return &bill
}

// perform 发起请求，body 为字符串时按 JSON 发送
func perform(r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func strPtr(s string) *string { return &s }

func uintStr(id uint) string { return strconv.FormatUint(uint64(id), 10) }
