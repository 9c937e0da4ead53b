package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCategoryNotFound 类别不存在
	ErrCategoryNotFound = errors.New("category not found")
	// ErrBillNotFound 账单不存在
	ErrBillNotFound = errors.New("bill not found")
	// ErrFileNotFound 账单原始文件在存储中不存在
	ErrFileNotFound = errors.New("file not found in storage")
	// ErrDuplicateName 已存在同名的启用类别
	ErrDuplicateName = errors.New("category with this name already exists")
)

// ValidationError 单个字段校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InvalidUploadError 上传文件类型或大小不符合要求
type InvalidUploadError struct {
	Status  int
	Message string
}

func (e *InvalidUploadError) Error() string {
	return e.Message
}

func uploadTooLarge(maxMB int) error {
	return &InvalidUploadError{
		Status:  http.StatusRequestEntityTooLarge,
		Message: fmt.Sprintf("File too large. Maximum size: %dMB", maxMB),
	}
}
