package service

import (
	"errors"
	"fmt"
	"time"

	"billsmith/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// DashboardTrendMonths 仪表盘趋势图的月份数
	DashboardTrendMonths = 12
	// DashboardDocumentCount 仪表盘展示的最近文档数
	DashboardDocumentCount = 5
	// DefaultTrendMonths 月度趋势默认月份数
	DefaultTrendMonths = 12
	// MaxTrendMonths 月度趋势最大月份数
	MaxTrendMonths = 120
	// RecentWindow 类别表现中"近三个月"的统计窗口
	RecentWindow = 90 * 24 * time.Hour
)

// LastPayment 最近一笔账单
type LastPayment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   models.Date     `json:"date"`
	Vendor string          `json:"vendor"`
}

// DashboardSummary 仪表盘摘要
type DashboardSummary struct {
	LastPayment *LastPayment    `json:"last_payment"`
	NextDue     *models.Date    `json:"next_due"`
	YearToDate  decimal.Decimal `json:"year_to_date"`
}

// PaymentTrendPoint 仪表盘趋势点
type PaymentTrendPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardDocument 仪表盘中的最近文档
type DashboardDocument struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Date        models.Date     `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	NeedsReview bool            `json:"needs_review"`
}

// Dashboard 单个类别的仪表盘
type Dashboard struct {
	Category           models.CategoryBrief `json:"category"`
	Summary            DashboardSummary     `json:"summary"`
	PaymentTrends      []PaymentTrendPoint  `json:"payment_trends"`
	ImportantDocuments []DashboardDocument  `json:"important_documents"`
}

// CategorySpending 年度汇总中的单个类别
type CategorySpending struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	ColorHex     string          `json:"color_hex"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	BillCount    int64           `json:"bill_count"`
	AvgAmount    decimal.Decimal `json:"avg_amount"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
}

// SpendingSummaryResult 年度支出汇总
type SpendingSummaryResult struct {
	Year        int                `json:"year"`
	TotalYearly decimal.Decimal    `json:"total_yearly"`
	Categories  []CategorySpending `json:"categories"`
}

// MonthlyTrend 月度趋势点
type MonthlyTrend struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyTrendsResult 月度趋势
type MonthlyTrendsResult struct {
	Trends []MonthlyTrend `json:"trends"`
}

// CategoryPerformanceItem 单个类别的表现
type CategoryPerformanceItem struct {
	CategoryID       uint            `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	ColorHex         string          `json:"color_hex"`
	TotalBills       int64           `json:"total_bills"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	AvgAmount        decimal.Decimal `json:"avg_amount"`
	Recent3MTotal    decimal.Decimal `json:"recent_3m_total" gorm:"column:recent_3m_total"`
	NeedsReviewCount int64           `json:"needs_review_count"`
}

// CategoryPerformanceResult 类别表现
type CategoryPerformanceResult struct {
	Categories []CategoryPerformanceItem `json:"categories"`
}

// monthWindows 返回截至 now 所在月份的 n 个自然月起点，从旧到新
func monthWindows(now time.Time, n int) []time.Time {
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	starts := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		starts = append(starts, current.AddDate(0, -i, 0))
	}
	return starts
}

// sumAmount 统计 [start, end) 内创建的账单金额
func sumAmount(db *gorm.DB, start, end time.Time, categoryID *uint) (decimal.Decimal, error) {
	query := db.Model(&models.Bill{}).
		Select("COALESCE(SUM(amount_due), 0)").
		Where("created_at >= ? AND created_at < ?", start, end)
	// 与账单过滤一致，0 视为不按类别过滤
	if categoryID != nil && *categoryID != 0 {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total decimal.Decimal
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

// CategoryDashboard 单个类别的仪表盘数据
func CategoryDashboard(db *gorm.DB, categoryID uint, now time.Time) (*Dashboard, error) {
	cat, err := GetCategory(db, categoryID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Category:           cat.Brief(),
		Summary:            DashboardSummary{YearToDate: decimal.Zero},
		PaymentTrends:      []PaymentTrendPoint{},
		ImportantDocuments: []DashboardDocument{},
	}

	recent := []models.Bill{}
	if err := db.Where("category_id = ?", categoryID).
		Order("created_at DESC, id DESC").
		Limit(DashboardDocumentCount).
		Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("dashboard recent bills: %w", err)
	}
	if len(recent) == 0 {
		return dashboard, nil
	}

	last := recent[0]
	dashboard.Summary.LastPayment = &LastPayment{
		Amount: last.AmountDue.Round(2),
		Date:   models.DateOf(last.CreatedAt.UTC()),
		Vendor: last.Vendor,
	}

	today := models.DateOf(now.UTC())
	var upcoming models.Bill
	err = db.Where("category_id = ? AND due_date IS NOT NULL AND due_date >= ?", categoryID, today).
		Order("due_date ASC, id ASC").
		Take(&upcoming).Error
	switch {
	case err == nil:
		dashboard.Summary.NextDue = upcoming.DueDate
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("dashboard next due: %w", err)
	}

	utcNow := now.UTC()
	yearStart := time.Date(utcNow.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	ytd, err := sumAmount(db, yearStart, yearStart.AddDate(1, 0, 0), &categoryID)
	if err != nil {
		return nil, fmt.Errorf("dashboard year to date: %w", err)
	}
	dashboard.Summary.YearToDate = ytd

	for _, start := range monthWindows(now, DashboardTrendMonths) {
		amount, err := sumAmount(db, start, start.AddDate(0, 1, 0), &categoryID)
		if err != nil {
			return nil, fmt.Errorf("dashboard trend %s: %w", start.Format("2006-01"), err)
		}
		dashboard.PaymentTrends = append(dashboard.PaymentTrends, PaymentTrendPoint{
			Date:   start.Format("2006-01"),
			Amount: amount,
		})
	}

	for _, b := range recent {
		dashboard.ImportantDocuments = append(dashboard.ImportantDocuments, DashboardDocument{
			ID:          b.ID,
			Title:       b.DocumentTitle(),
			Date:        models.DateOf(b.CreatedAt.UTC()),
			Amount:      b.AmountDue.Round(2),
			NeedsReview: b.NeedsReview,
		})
	}
	return dashboard, nil
}

// SpendingSummary 按类别汇总某年（按账单创建时间）的支出
// 已归档类别的账单同样计入
func SpendingSummary(db *gorm.DB, year int) (*SpendingSummaryResult, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	rows := []CategorySpending{}
	err := db.Table("categories").
		Select(`categories.id AS category_id,
			categories.name AS category_name,
			categories.color_hex AS color_hex,
			COALESCE(SUM(bills.amount_due), 0) AS total_spent,
			COUNT(bills.id) AS bill_count,
			COALESCE(AVG(bills.amount_due), 0) AS avg_amount,
			COALESCE(MAX(bills.amount_due), 0) AS max_amount`).
		Joins("JOIN bills ON bills.category_id = categories.id").
		Where("bills.created_at >= ? AND bills.created_at < ?", start, end).
		Group("categories.id, categories.name, categories.color_hex").
		Order("total_spent DESC, categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("spending summary %d: %w", year, err)
	}

	result := &SpendingSummaryResult{Year: year, TotalYearly: decimal.Zero, Categories: rows}
	for i := range result.Categories {
		row := &result.Categories[i]
		row.TotalSpent = row.TotalSpent.Round(2)
		row.AvgAmount = row.AvgAmount.Round(2)
		row.MaxAmount = row.MaxAmount.Round(2)
		result.TotalYearly = result.TotalYearly.Add(row.TotalSpent)
	}
	return result, nil
}

// ClampTrendMonths 把月份数限制在 [1, MaxTrendMonths]，0 表示默认值
func ClampTrendMonths(months int) int {
	switch {
	case months == 0:
		return DefaultTrendMonths
	case months < 1:
		return 1
	case months > MaxTrendMonths:
		return MaxTrendMonths
	}
	return months
}

// MonthlyTrends 最近若干个自然月的支出，从旧到新；categoryID 为 nil 时统计全部
func MonthlyTrends(db *gorm.DB, months int, categoryID *uint, now time.Time) (*MonthlyTrendsResult, error) {
	months = ClampTrendMonths(months)

	result := &MonthlyTrendsResult{Trends: make([]MonthlyTrend, 0, months)}
	for _, start := range monthWindows(now, months) {
		amount, err := sumAmount(db, start, start.AddDate(0, 1, 0), categoryID)
		if err != nil {
			return nil, fmt.Errorf("monthly trend %s: %w", start.Format("2006-01"), err)
		}
		result.Trends = append(result.Trends, MonthlyTrend{Month: start.Format("2006-01"), Amount: amount})
	}
	return result, nil
}

// CategoryPerformance 启用类别的表现，只包含有账单的类别，按总支出降序
func CategoryPerformance(db *gorm.DB, now time.Time) (*CategoryPerformanceResult, error) {
	recentSince := now.UTC().Add(-RecentWindow)

	rows := []CategoryPerformanceItem{}
	err := db.Table("categories").
		Select(`categories.id AS category_id,
			categories.name AS category_name,
			categories.color_hex AS color_hex,
			COUNT(bills.id) AS total_bills,
			COALESCE(SUM(bills.amount_due), 0) AS total_spent,
			COALESCE(AVG(bills.amount_due), 0) AS avg_amount,
			COALESCE(SUM(CASE WHEN bills.created_at >= ? THEN bills.amount_due ELSE 0 END), 0) AS recent_3m_total,
			COALESCE(SUM(CASE WHEN bills.needs_review = ? THEN 1 ELSE 0 END), 0) AS needs_review_count`,
			recentSince, true).
		Joins("JOIN bills ON bills.category_id = categories.id").
		Where("categories.active = ?", true).
		Group("categories.id, categories.name, categories.color_hex").
		Order("total_spent DESC, categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("category performance: %w", err)
	}

	for i := range rows {
		rows[i].TotalSpent = rows[i].TotalSpent.Round(2)
		rows[i].AvgAmount = rows[i].AvgAmount.Round(2)
		rows[i].Recent3MTotal = rows[i].Recent3MTotal.Round(2)
	}
	return &CategoryPerformanceResult{Categories: rows}, nil
}
