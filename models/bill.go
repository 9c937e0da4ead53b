package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// 金额在 JSON 中输出为数字而不是字符串
	decimal.MarshalJSONWithoutQuotes = true
}

// Bill 账单，从上传的票据中提取（或手工/模拟创建）
type Bill struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	CategoryID      uint             `json:"category_id" gorm:"not null;index;index:idx_category_due_date,priority:1"`
	Vendor          string           `json:"vendor" gorm:"size:200;not null;index:idx_vendor"`
	InvoiceNumber   *string          `json:"invoice_number" gorm:"size:100"`
	AccountNumber   *string          `json:"account_number" gorm:"size:100"`
	BillingStart    *Date            `json:"billing_start"`
	BillingEnd      *Date            `json:"billing_end"`
	DueDate         *Date            `json:"due_date" gorm:"index;index:idx_category_due_date,priority:2"`
	AmountDue       decimal.Decimal  `json:"amount_due" gorm:"type:decimal(10,2);not null"`
	UsageQty        *decimal.Decimal `json:"usage_qty" gorm:"type:decimal(10,3)"`
	UsageUnit       *string          `json:"usage_unit" gorm:"size:50"`
	TaxTotal        *decimal.Decimal `json:"tax_total" gorm:"type:decimal(10,2)"`
	FilePath        string           `json:"file_path" gorm:"size:500;not null"`
	NeedsReview     bool             `json:"needs_review" gorm:"not null;index"`
	ConfidenceScore *float64         `json:"confidence_score"`
	CreatedAt       time.Time        `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Category        Category         `json:"category" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Bill) TableName() string {
	return "bills"
}

// DocumentTitle 文档标题："供应商 - 发票号"，无发票号时为 "供应商 - Invoice"
func (b Bill) DocumentTitle() string {
	invoice := "Invoice"
	if b.InvoiceNumber != nil && *b.InvoiceNumber != "" {
		invoice = *b.InvoiceNumber
	}
	return b.Vendor + " - " + invoice
}

// BillCreate 创建账单
type BillCreate struct {
	CategoryID      uint             `json:"category_id" binding:"required"`
	Vendor          string           `json:"vendor" binding:"required,max=200"`
	InvoiceNumber   *string          `json:"invoice_number" binding:"omitempty,max=100"`
	AccountNumber   *string          `json:"account_number" binding:"omitempty,max=100"`
	BillingStart    *Date            `json:"billing_start"`
	BillingEnd      *Date            `json:"billing_end"`
	DueDate         *Date            `json:"due_date"`
	AmountDue       decimal.Decimal  `json:"amount_due"`
	UsageQty        *decimal.Decimal `json:"usage_qty"`
	UsageUnit       *string          `json:"usage_unit" binding:"omitempty,max=50"`
	TaxTotal        *decimal.Decimal `json:"tax_total"`
	FilePath        string           `json:"file_path" binding:"required,max=500"`
	NeedsReview     bool             `json:"needs_review"`
	ConfidenceScore *float64         `json:"confidence_score"`
}

// BillUpdate 手工修正账单，只更新请求体中出现的字段
type BillUpdate struct {
	CategoryID    Optional[uint]            `json:"category_id" swaggertype:"integer"`
	Vendor        Optional[string]          `json:"vendor" swaggertype:"string"`
	InvoiceNumber Optional[string]          `json:"invoice_number" swaggertype:"string"`
	AccountNumber Optional[string]          `json:"account_number" swaggertype:"string"`
	BillingStart  Optional[Date]            `json:"billing_start" swaggertype:"string"`
	BillingEnd    Optional[Date]            `json:"billing_end" swaggertype:"string"`
	DueDate       Optional[Date]            `json:"due_date" swaggertype:"string"`
	AmountDue     Optional[decimal.Decimal] `json:"amount_due" swaggertype:"number"`
	UsageQty      Optional[decimal.Decimal] `json:"usage_qty" swaggertype:"number"`
	UsageUnit     Optional[string]          `json:"usage_unit" swaggertype:"string"`
	TaxTotal      Optional[decimal.Decimal] `json:"tax_total" swaggertype:"number"`
	NeedsReview   Optional[bool]            `json:"needs_review" swaggertype:"boolean"`
}
