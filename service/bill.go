package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"billsmith/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultBillLimit 账单列表默认条数
	DefaultBillLimit = 20
	// MaxBillLimit 账单列表单页上限
	MaxBillLimit = 100
)

// BillFilter 账单列表筛选条件
type BillFilter struct {
	CategoryID  *uint
	NeedsReview *bool
	Search      string
	Skip        int
	Limit       int
}

// scope 只应用筛选条件，不含分页
func (f BillFilter) scope(db *gorm.DB) *gorm.DB {
	query := db.Model(&models.Bill{})
	if f.CategoryID != nil && *f.CategoryID != 0 {
		query = query.Where("bills.category_id = ?", *f.CategoryID)
	}
	if f.NeedsReview != nil {
		query = query.Where("bills.needs_review = ?", *f.NeedsReview)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(bills.vendor) LIKE ? OR LOWER(bills.invoice_number) LIKE ? OR LOWER(bills.account_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}

func (f BillFilter) page() (offset, limit int) {
	offset, limit = f.Skip, f.Limit
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultBillLimit
	}
	if limit > MaxBillLimit {
		limit = MaxBillLimit
	}
	return offset, limit
}

// ListBills 按条件分页列出账单，最新创建的在前
func ListBills(db *gorm.DB, f BillFilter) ([]models.Bill, error) {
	offset, limit := f.page()
	bills := []models.Bill{}
	err := f.scope(db).
		Preload("Category").
		Order("bills.created_at DESC, bills.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// ListAllBills 不分页，供导出使用
func ListAllBills(db *gorm.DB, f BillFilter) ([]models.Bill, error) {
	bills := []models.Bill{}
	err := f.scope(db).
		Preload("Category").
		Order("bills.created_at DESC, bills.id DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// CountBills 满足筛选条件的账单总数
func CountBills(db *gorm.DB, f BillFilter) (int64, error) {
	var total int64
	if err := f.scope(db).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}
	return total, nil
}

// GetBill 按 ID 获取账单
func GetBill(db *gorm.DB, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := db.Preload("Category").First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("get bill %d: %w", id, err)
	}
	return &bill, nil
}

func roundOptional(d *decimal.Decimal, places int32) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(places)
	return &r
}

// CreateBill 创建账单，created_at 与 updated_at 相同
func CreateBill(db *gorm.DB, in models.BillCreate) (*models.Bill, error) {
	vendor := strings.TrimSpace(in.Vendor)
	if vendor == "" {
		return nil, invalid("vendor", "vendor must not be empty")
	}
	if strings.TrimSpace(in.FilePath) == "" {
		return nil, invalid("file_path", "file_path must not be empty")
	}
	if _, err := GetCategory(db, in.CategoryID); err != nil {
		return nil, err
	}

	now := db.NowFunc()
	bill := models.Bill{
		CategoryID:      in.CategoryID,
		Vendor:          vendor,
		InvoiceNumber:   in.InvoiceNumber,
		AccountNumber:   in.AccountNumber,
		BillingStart:    in.BillingStart,
		BillingEnd:      in.BillingEnd,
		DueDate:         in.DueDate,
		AmountDue:       in.AmountDue.Round(2),
		UsageQty:        roundOptional(in.UsageQty, 3),
		UsageUnit:       in.UsageUnit,
		TaxTotal:        roundOptional(in.TaxTotal, 2),
		FilePath:        in.FilePath,
		NeedsReview:     in.NeedsReview,
		ConfidenceScore: in.ConfidenceScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Omit(clause.Associations).Create(&bill).Error; err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	return GetBill(db, bill.ID)
}

// nextUpdatedAt 保证 updated_at 严格递增
func nextUpdatedAt(now, previous time.Time) time.Time {
	if !now.After(previous) {
		return previous.Add(time.Microsecond)
	}
	return now
}

// UpdateBill 只更新请求中出现的字段，updated_at 总是刷新
func UpdateBill(db *gorm.DB, id uint, in models.BillUpdate) (*models.Bill, error) {
	bill, err := GetBill(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if in.CategoryID.Set {
		if in.CategoryID.Value == nil {
			return nil, invalid("category_id", "category_id must not be null")
		}
		if _, err := GetCategory(db, *in.CategoryID.Value); err != nil {
			return nil, err
		}
		updates["category_id"] = *in.CategoryID.Value
	}
	if in.Vendor.Set {
		if in.Vendor.Value == nil || strings.TrimSpace(*in.Vendor.Value) == "" {
			return nil, invalid("vendor", "vendor must not be empty")
		}
		updates["vendor"] = strings.TrimSpace(*in.Vendor.Value)
	}
	if in.InvoiceNumber.Set {
		updates["invoice_number"] = in.InvoiceNumber.Value
	}
	if in.AccountNumber.Set {
		updates["account_number"] = in.AccountNumber.Value
	}
	if in.BillingStart.Set {
		updates["billing_start"] = in.BillingStart.Value
	}
	if in.BillingEnd.Set {
		updates["billing_end"] = in.BillingEnd.Value
	}
	if in.DueDate.Set {
		updates["due_date"] = in.DueDate.Value
	}
	if in.AmountDue.Set {
		if in.AmountDue.Value == nil {
			return nil, invalid("amount_due", "amount_due must not be null")
		}
		updates["amount_due"] = in.AmountDue.Value.Round(2)
	}
	if in.UsageQty.Set {
		updates["usage_qty"] = roundOptional(in.UsageQty.Value, 3)
	}
	if in.UsageUnit.Set {
		updates["usage_unit"] = in.UsageUnit.Value
	}
	if in.TaxTotal.Set {
		updates["tax_total"] = roundOptional(in.TaxTotal.Value, 2)
	}
	if in.NeedsReview.Set {
		if in.NeedsReview.Value == nil {
			return nil, invalid("needs_review", "needs_review must not be null")
		}
		updates["needs_review"] = *in.NeedsReview.Value
	}
	updates["updated_at"] = nextUpdatedAt(db.NowFunc(), bill.UpdatedAt)

	if err := db.Model(&models.Bill{ID: bill.ID}).Omit(clause.Associations).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update bill %d: %w", id, err)
	}
	return GetBill(db, id)
}

// DeleteBill 删除账单记录，再尝试删除原始文件；文件删除失败只记录日志
func DeleteBill(ctx context.Context, db *gorm.DB, storage StorageProvider, id uint) error {
	bill, err := GetBill(db, id)
	if err != nil {
		return err
	}
	if err := db.Delete(&models.Bill{}, bill.ID).Error; err != nil {
		return fmt.Errorf("delete bill %d: %w", id, err)
	}

	if storage == nil || bill.FilePath == "" {
		return nil
	}
	if err := storage.Remove(ctx, bill.FilePath); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			zap.L().Debug("账单文件已不存在", zap.Uint("bill_id", bill.ID), zap.String("path", bill.FilePath))
		} else {
			zap.L().Warn("删除账单文件失败", zap.Uint("bill_id", bill.ID), zap.String("path", bill.FilePath), zap.Error(err))
		}
	}
	return nil
}

// MockBillInput 测试用模拟账单参数
type MockBillInput struct {
	Vendor       string
	Amount       decimal.Decimal
	CategoryName string
}

// DefaultMockBillInput 模拟账单默认值
func DefaultMockBillInput() MockBillInput {
	return MockBillInput{
		Vendor:       "Test Utility Company",
		Amount:       decimal.RequireFromString("125.50"),
		CategoryName: "Electricity",
	}
}

func randomCode(n int) string {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return code[:n]
}

// CreateMockBill 创建一条模拟账单，类别不存在时自动创建
func CreateMockBill(db *gorm.DB, storage StorageProvider, in MockBillInput) (*models.Bill, error) {
	defaults := DefaultMockBillInput()
	if strings.TrimSpace(in.Vendor) == "" {
		in.Vendor = defaults.Vendor
	}
	if strings.TrimSpace(in.CategoryName) == "" {
		in.CategoryName = defaults.CategoryName
	}

	cat, err := GetOrCreateCategory(db, in.CategoryName, models.DefaultColorHex)
	if err != nil {
		return nil, err
	}

	invoice := "INV-" + randomCode(8)
	account := "ACC-" + randomCode(10)
	confidence := 0.95
	return CreateBill(db, models.BillCreate{
		CategoryID:      cat.ID,
		Vendor:          in.Vendor,
		InvoiceNumber:   &invoice,
		AccountNumber:   &account,
		AmountDue:       in.Amount,
		FilePath:        storage.Location("mock/mock_bill.pdf"),
		NeedsReview:     false,
		ConfidenceScore: &confidence,
	})
}
