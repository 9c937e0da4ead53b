package api

import (
	"errors"
	"net/http"

	"billsmith/config"
	"billsmith/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 错误响应结构
type Response struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// MessageResponse 只带提示信息的成功响应
type MessageResponse struct {
	Message string `json:"message"`
}

// Success 成功响应，直接返回资源本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SuccessWithMessage 只返回提示信息
func SuccessWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// ValidationFailed 422 错误响应，附带字段错误列表
func ValidationFailed(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// handleServiceError 把 service 层错误映射为 HTTP 响应
func handleServiceError(c *gin.Context, err error, fallback string) {
	var vErr *service.ValidationError
	var uErr *service.InvalidUploadError

	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		NotFound(c, "Category not found")
	case errors.Is(err, service.ErrBillNotFound):
		NotFound(c, "Bill not found")
	case errors.Is(err, service.ErrFileNotFound):
		NotFound(c, "File not found on disk")
	case errors.Is(err, service.ErrDuplicateName):
		BadRequest(c, "Category with this name already exists")
	case errors.As(err, &vErr):
		ValidationFailed(c, []FieldError{{Field: vErr.Field, Message: vErr.Message}})
	case errors.As(err, &uErr):
		Error(c, uErr.Status, uErr.Message)
	default:
		zap.L().Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		InternalError(c, config.SafeErrorMessage(err, fallback))
	}
}
