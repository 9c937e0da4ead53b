package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"billsmith/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadStatusUploaded 上传完成（尚未处理）
const UploadStatusUploaded = "uploaded"

// UploadPolicy 上传限制，类型白名单和大小上限直接取自 upload 配置
type UploadPolicy struct {
	config.UploadConfig
}

// NewUploadPolicy 从配置构造上传限制
func NewUploadPolicy(cfg config.UploadConfig) UploadPolicy {
	return UploadPolicy{UploadConfig: cfg}
}

// allows 扩展名（不含点，忽略大小写）是否在白名单内
func (p UploadPolicy) allows(ext string) bool {
	for _, t := range p.AllowedTypes {
		if strings.EqualFold(t, ext) {
			return true
		}
	}
	return false
}

// Check 校验单个文件，返回小写扩展名
func (p UploadPolicy) Check(filename string, size int64) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !p.allows(ext) {
		return "", &InvalidUploadError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("File type %s not allowed. Allowed types: %s", ext, strings.Join(p.AllowedTypes, ", ")),
		}
	}
	if size > p.MaxFileSize() {
		return "", uploadTooLarge(p.MaxFileSizeMB)
	}
	return ext, nil
}

// UploadResult 上传结果，jobs 为每个文件的任务 ID
type UploadResult struct {
	Jobs    []string `json:"jobs"`
	Status  string   `json:"status"`
	Message string   `json:"message"`
}

// SaveUploads 先校验全部文件，全部通过后再逐个写入 temp/{job}.{ext}
// 只保存文件，不做识别处理
func SaveUploads(ctx context.Context, storage StorageProvider, files []*multipart.FileHeader, policy UploadPolicy) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, &InvalidUploadError{Status: http.StatusBadRequest, Message: "No files uploaded"}
	}

	exts := make([]string, len(files))
	for i, fh := range files {
		ext, err := policy.Check(fh.Filename, fh.Size)
		if err != nil {
			return nil, err
		}
		exts[i] = ext
	}

	result := &UploadResult{Jobs: make([]string, 0, len(files)), Status: UploadStatusUploaded}
	for i, fh := range files {
		jobID := uuid.NewString()
		key := "temp/" + jobID + "." + exts[i]

		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		location, err := storage.Save(ctx, key, src, fh.Size, ContentTypeFor(fh.Filename))
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("save upload %s: %w", fh.Filename, err)
		}

		zap.L().Info("账单文件已上传", zap.String("job", jobID), zap.String("file", fh.Filename), zap.String("location", location))
		result.Jobs = append(result.Jobs, jobID)
	}
	result.Message = fmt.Sprintf("Uploaded %d files", len(files))
	return result, nil
}
