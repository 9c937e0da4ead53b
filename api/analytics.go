package api

import (
	"time"

	"billsmith/database"
	"billsmith/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 统计分析
type AnalyticsHandler struct {
	now func() time.Time
}

func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{now: time.Now}
}

// Dashboard 类别仪表盘
// @Summary 类别仪表盘
// @Description 最近一次付款、下一个到期日、本年累计、近 12 个月趋势和最近 5 份账单
// @Tags 统计
// @Produce json
// @Param category_id path int true "类别ID"
// @Success 200 {object} service.Dashboard
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/analytics/dashboard/{category_id} [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	id, ok := parseID(c, "category_id")
	if !ok {
		return
	}
	dashboard, err := service.CategoryDashboard(database.DB.WithContext(c.Request.Context()), id, h.now())
	if err != nil {
		handleServiceError(c, err, "获取仪表盘失败")
		return
	}
	Success(c, dashboard)
}

type spendingSummaryQuery struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// SpendingSummary 年度支出汇总
// @Summary 年度支出汇总
// @Description 按类别汇总某年的支出，默认当年
// @Tags 统计
// @Produce json
// @Param year query int false "年份"
// @Success 200 {object} service.SpendingSummaryResult
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/analytics/spending/summary [get]
func (h *AnalyticsHandler) SpendingSummary(c *gin.Context) {
	var q spendingSummaryQuery
	if !bindQuery(c, &q) {
		return
	}
	year := q.Year
	if year == 0 {
		year = h.now().UTC().Year()
	}

	result, err := service.SpendingSummary(database.DB.WithContext(c.Request.Context()), year)
	if err != nil {
		handleServiceError(c, err, "获取支出汇总失败")
		return
	}
	Success(c, result)
}

type monthlyTrendsQuery struct {
	Months     int   `form:"months" binding:"omitempty,min=1,max=120"`
	CategoryID *uint `form:"category_id"`
}

// MonthlyTrends 月度支出趋势
// @Summary 月度支出趋势
// @Description 最近若干个自然月的支出，从旧到新，可按类别过滤
// @Tags 统计
// @Produce json
// @Param months query int false "月份数" default(12)
// @Param category_id query int false "类别ID"
// @Success 200 {object} service.MonthlyTrendsResult
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/analytics/trends/monthly [get]
func (h *AnalyticsHandler) MonthlyTrends(c *gin.Context) {
	var q monthlyTrendsQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := service.MonthlyTrends(database.DB.WithContext(c.Request.Context()), q.Months, q.CategoryID, h.now())
	if err != nil {
		handleServiceError(c, err, "获取月度趋势失败")
		return
	}
	Success(c, result)
}

// CategoryPerformance 类别表现
// @Summary 类别表现
// @Description 启用类别的账单数、总额、均值、近 90 天总额和待复核数量
// @Tags 统计
// @Produce json
// @Success 200 {object} service.CategoryPerformanceResult
// @Router /api/v1/analytics/categories/performance [get]
func (h *AnalyticsHandler) CategoryPerformance(c *gin.Context) {
	result, err := service.CategoryPerformance(database.DB.WithContext(c.Request.Context()), h.now())
	if err != nil {
		handleServiceError(c, err, "获取类别表现失败")
		return
	}
	Success(c, result)
}
