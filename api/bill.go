package api

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"billsmith/config"
	"billsmith/database"
	"billsmith/models"
	"billsmith/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BillHandler 账单
type BillHandler struct {
	storage      service.StorageProvider
	policy       service.UploadPolicy
	reminderDays int
	now          func() time.Time
}

// NewBillHandler 创建账单处理器
func NewBillHandler(cfg *config.Config, storage service.StorageProvider) *BillHandler {
	return &BillHandler{
		storage:      storage,
		policy:       service.NewUploadPolicy(cfg.Upload),
		reminderDays: cfg.Reminder.Days,
		now:          time.Now,
	}
}

type billFilterQuery struct {
	CategoryID  *uint  `form:"category_id"`
	NeedsReview *bool  `form:"needs_review"`
	Search      string `form:"search" binding:"max=200"`
}

func (q billFilterQuery) filter() service.BillFilter {
	return service.BillFilter{CategoryID: q.CategoryID, NeedsReview: q.NeedsReview, Search: q.Search}
}

type billListQuery struct {
	billFilterQuery
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// List 账单列表
// @Summary 获取账单列表
// @Description 按创建时间倒序；search 对供应商、发票号、账号做不区分大小写的模糊匹配。总数在 X-Total-Count 响应头中
// @Tags 账单
// @Produce json
// @Param skip query int false "跳过条数" default(0)
// @Param limit query int false "返回条数，最大 100" default(20)
// @Param category_id query int false "类别ID"
// @Param needs_review query bool false "是否需要复核"
// @Param search query string false "搜索关键字"
// @Success 200 {array} models.Bill
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/bills [get]
func (h *BillHandler) List(c *gin.Context) {
	var q billListQuery
	if !bindQuery(c, &q) {
		return
	}
	db := database.DB.WithContext(c.Request.Context())
	f := q.filter()
	f.Skip, f.Limit = q.Skip, q.Limit

	bills, err := service.ListBills(db, f)
	if err != nil {
		handleServiceError(c, err, "查询账单失败")
		return
	}
	total, err := service.CountBills(db, f)
	if err != nil {
		handleServiceError(c, err, "查询账单失败")
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	Success(c, bills)
}

// Get 获取账单
// @Summary 获取账单
// @Tags 账单
// @Produce json
// @Param id path int true "账单ID"
// @Success 200 {object} models.Bill
// @Failure 404 {object} Response "账单不存在"
// @Router /api/v1/bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bill, err := service.GetBill(database.DB.WithContext(c.Request.Context()), id)
	if err != nil {
		handleServiceError(c, err, "查询账单失败")
		return
	}
	Success(c, bill)
}

// Update 手工修正账单
// @Summary 更新账单
// @Description 只更新请求体中出现的字段，可空字段传 null 表示清空
// @Tags 账单
// @Accept json
// @Produce json
// @Param id path int true "账单ID"
// @Param request body models.BillUpdate true "更新内容"
// @Success 200 {object} models.Bill
// @Failure 404 {object} Response "账单或类别不存在"
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/bills/{id} [patch]
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.BillUpdate
	if !bindJSON(c, &req) {
		return
	}
	bill, err := service.UpdateBill(database.DB.WithContext(c.Request.Context()), id, req)
	if err != nil {
		handleServiceError(c, err, "更新账单失败")
		return
	}
	Success(c, bill)
}

// Delete 删除账单及其原始文件
// @Summary 删除账单
// @Tags 账单
// @Produce json
// @Param id path int true "账单ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} Response "账单不存在"
// @Router /api/v1/bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := service.DeleteBill(ctx, database.DB.WithContext(ctx), h.storage, id); err != nil {
		handleServiceError(c, err, "删除账单失败")
		return
	}
	SuccessWithMessage(c, "Bill deleted successfully")
}

// downloadName 下载文件名：供应商_发票号.扩展名
func downloadName(bill *models.Bill) string {
	invoice := "invoice"
	if bill.InvoiceNumber != nil && *bill.InvoiceNumber != "" {
		invoice = *bill.InvoiceNumber
	}
	ext := strings.TrimPrefix(filepath.Ext(bill.FilePath), ".")
	return fmt.Sprintf("%s_%s.%s", bill.Vendor, invoice, ext)
}

// File 下载账单原始文件
// @Summary 下载账单文件
// @Tags 账单
// @Produce octet-stream
// @Param id path int true "账单ID"
// @Success 200 {file} file "原始文件"
// @Failure 404 {object} Response "账单或文件不存在"
// @Router /api/v1/bills/{id}/file [get]
func (h *BillHandler) File(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	bill, err := service.GetBill(database.DB.WithContext(ctx), id)
	if err != nil {
		handleServiceError(c, err, "查询账单失败")
		return
	}

	rc, err := h.storage.Open(ctx, bill.FilePath)
	if err != nil {
		handleServiceError(c, err, "读取账单文件失败")
		return
	}
	defer rc.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": downloadName(bill)})
	c.DataFromReader(http.StatusOK, -1, service.ContentTypeFor(bill.FilePath), rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

// Upload 上传账单文件
// @Summary 上传账单
// @Description 只保存文件并返回任务ID，不做识别处理。任一文件类型或大小不符合要求时整批拒绝
// @Tags 账单
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "账单文件（可多个）"
// @Success 200 {object} service.UploadResult
// @Failure 400 {object} Response "没有文件或文件类型不允许"
// @Failure 413 {object} Response "文件过大"
// @Failure 429 {object} Response "上传过于频繁"
// @Router /api/v1/bills/upload [post]
func (h *BillHandler) Upload(c *gin.Context) {
	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["files"]
	}

	result, err := service.SaveUploads(c.Request.Context(), h.storage, files, h.policy)
	if err != nil {
		handleServiceError(c, err, "保存上传文件失败")
		return
	}
	Success(c, result)
}

type mockBillQuery struct {
	Vendor       string `form:"vendor" binding:"max=200"`
	Amount       string `form:"amount"`
	CategoryName string `form:"category_name" binding:"max=100"`
}

// Mock 创建模拟账单
// @Summary 创建模拟账单
// @Description 测试用，类别不存在时自动创建
// @Tags 账单
// @Produce json
// @Param vendor query string false "供应商" default(Test Utility Company)
// @Param amount query number false "金额" default(125.50)
// @Param category_name query string false "类别名称" default(Electricity)
// @Success 200 {object} models.Bill
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/bills/mock [post]
func (h *BillHandler) Mock(c *gin.Context) {
	var q mockBillQuery
	if !bindQuery(c, &q) {
		return
	}

	in := service.DefaultMockBillInput()
	if q.Vendor != "" {
		in.Vendor = q.Vendor
	}
	if q.CategoryName != "" {
		in.CategoryName = q.CategoryName
	}
	if q.Amount != "" {
		amount, err := decimal.NewFromString(q.Amount)
		if err != nil {
			ValidationFailed(c, []FieldError{{Field: "amount", Message: "must be a number"}})
			return
		}
		in.Amount = amount
	}

	bill, err := service.CreateMockBill(database.DB.WithContext(c.Request.Context()), h.storage, in)
	if err != nil {
		handleServiceError(c, err, "创建模拟账单失败")
		return
	}
	Success(c, bill)
}

type dueQuery struct {
	Days *int `form:"days" binding:"omitempty,min=0,max=365"`
}

// Due 即将到期的账单
// @Summary 即将到期的账单
// @Description 到期日在今天到今天+days 之间，按到期日升序
// @Tags 账单
// @Produce json
// @Param days query int false "天数" default(7)
// @Success 200 {array} models.Bill
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/bills/due [get]
func (h *BillHandler) Due(c *gin.Context) {
	var q dueQuery
	if !bindQuery(c, &q) {
		return
	}
	days := h.reminderDays
	if q.Days != nil {
		days = *q.Days
	}

	bills, err := service.DueSoon(database.DB.WithContext(c.Request.Context()), h.now(), days)
	if err != nil {
		handleServiceError(c, err, "查询到期账单失败")
		return
	}
	Success(c, bills)
}

func (h *BillHandler) exportBills(c *gin.Context) ([]models.Bill, bool) {
	var q billFilterQuery
	if !bindQuery(c, &q) {
		return nil, false
	}
	bills, err := service.ListAllBills(database.DB.WithContext(c.Request.Context()), q.filter())
	if err != nil {
		handleServiceError(c, err, "查询账单失败")
		return nil, false
	}
	return bills, true
}

// ExportCSV 导出账单为 CSV
// @Summary 导出账单 CSV
// @Description 支持与列表相同的筛选条件，不分页
// @Tags 导出
// @Produce text/csv
// @Param category_id query int false "类别ID"
// @Param needs_review query bool false "是否需要复核"
// @Param search query string false "搜索关键字"
// @Success 200 {file} file "CSV 文件"
// @Router /api/v1/bills/export/csv [get]
func (h *BillHandler) ExportCSV(c *gin.Context) {
	bills, ok := h.exportBills(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	if err := service.WriteBillsCSV(buf, bills); err != nil {
		handleServiceError(c, err, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("bills_%s.csv", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出账单为 Excel
// @Summary 导出账单 Excel
// @Description 支持与列表相同的筛选条件，最后一行为合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param category_id query int false "类别ID"
// @Param needs_review query bool false "是否需要复核"
// @Param search query string false "搜索关键字"
// @Success 200 {file} file "xlsx 文件"
// @Router /api/v1/bills/export/excel [get]
func (h *BillHandler) ExportExcel(c *gin.Context) {
	bills, ok := h.exportBills(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	if err := service.WriteBillsExcel(buf, bills); err != nil {
		handleServiceError(c, err, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("bills_%s.xlsx", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
