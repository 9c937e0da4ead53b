package api

import (
	"billsmith/database"
	"billsmith/models"
	"billsmith/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 账单类别
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type categoryListQuery struct {
	Skip       int   `form:"skip" binding:"min=0"`
	Limit      int   `form:"limit" binding:"omitempty,min=1,max=1000"`
	ActiveOnly *bool `form:"active_only"`
}

// List 列出类别
// @Summary 获取类别列表
// @Description 默认只返回启用的类别，按 ID 排序
// @Tags 类别
// @Produce json
// @Param skip query int false "跳过条数" default(0)
// @Param limit query int false "返回条数" default(100)
// @Param active_only query bool false "只返回启用的类别" default(true)
// @Success 200 {array} models.Category
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var q categoryListQuery
	if !bindQuery(c, &q) {
		return
	}
	activeOnly := true
	if q.ActiveOnly != nil {
		activeOnly = *q.ActiveOnly
	}

	list, err := service.ListCategories(database.DB.WithContext(c.Request.Context()), service.CategoryListOptions{
		ActiveOnly: activeOnly,
		Skip:       q.Skip,
		Limit:      q.Limit,
	})
	if err != nil {
		handleServiceError(c, err, "查询类别失败")
		return
	}
	Success(c, list)
}

// Get 获取单个类别（含已归档）
// @Summary 获取类别
// @Tags 类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cat, err := service.GetCategory(database.DB.WithContext(c.Request.Context()), id)
	if err != nil {
		handleServiceError(c, err, "查询类别失败")
		return
	}
	Success(c, cat)
}

// Create 创建类别
// @Summary 创建类别
// @Description 同名的启用类别只能有一个，颜色默认 #2222FF
// @Tags 类别
// @Accept json
// @Produce json
// @Param request body models.CategoryCreate true "类别信息"
// @Success 201 {object} models.Category
// @Failure 400 {object} Response "类别名称已存在"
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CategoryCreate
	if !bindJSON(c, &req) {
		return
	}
	cat, err := service.CreateCategory(database.DB.WithContext(c.Request.Context()), req)
	if err != nil {
		handleServiceError(c, err, "创建类别失败")
		return
	}
	Created(c, cat)
}

// Update 部分更新类别
// @Summary 更新类别
// @Description 只更新请求体中出现的字段；active=true 可重新启用已归档类别
// @Tags 类别
// @Accept json
// @Produce json
// @Param id path int true "类别ID"
// @Param request body models.CategoryUpdate true "更新内容"
// @Success 200 {object} models.Category
// @Failure 400 {object} Response "类别名称已存在"
// @Failure 404 {object} Response "类别不存在"
// @Failure 422 {object} Response "参数错误"
// @Router /api/v1/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CategoryUpdate
	if !bindJSON(c, &req) {
		return
	}
	cat, err := service.UpdateCategory(database.DB.WithContext(c.Request.Context()), id, req)
	if err != nil {
		handleServiceError(c, err, "更新类别失败")
		return
	}
	Success(c, cat)
}

// Delete 归档类别
// @Summary 归档类别
// @Description 软删除，类别下的账单保留
// @Tags 类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := service.ArchiveCategory(database.DB.WithContext(c.Request.Context()), id); err != nil {
		handleServiceError(c, err, "归档类别失败")
		return
	}
	SuccessWithMessage(c, "Category archived successfully")
}
