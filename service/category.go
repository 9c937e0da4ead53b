package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"billsmith/models"

	"gorm.io/gorm"
)

const (
	// DefaultCategoryLimit 类别列表默认条数
	DefaultCategoryLimit = 100
)

var colorHexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryListOptions 类别列表参数
type CategoryListOptions struct {
	ActiveOnly bool
	Skip       int
	Limit      int
}

// ListCategories 列出类别，默认只含启用的
func ListCategories(db *gorm.DB, opts CategoryListOptions) ([]models.Category, error) {
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultCategoryLimit
	}

	query := db.Model(&models.Category{})
	if opts.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	categories := []models.Category{}
	if err := query.Order("id ASC").Offset(opts.Skip).Limit(opts.Limit).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory 按 ID 获取类别（含已归档）
func GetCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &cat, nil
}

// GetCategoryByName 按名称获取启用的类别，不存在时返回 nil, nil
func GetCategoryByName(db *gorm.DB, name string) (*models.Category, error) {
	var cat models.Category
	err := db.Where("name = ? AND active = ?", name, true).Order("id ASC").Take(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &cat, nil
}

// activeNameTaken 是否有其他启用类别使用该名称
func activeNameTaken(tx *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	query := tx.Model(&models.Category{}).Where("name = ? AND active = ?", name, true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "name must not be empty")
	}
	if len([]rune(name)) > 100 {
		return "", invalid("name", "name must be at most 100 characters")
	}
	return name, nil
}

func normalizeColor(color string) (string, error) {
	if color == "" {
		return models.DefaultColorHex, nil
	}
	if !colorHexPattern.MatchString(color) {
		return "", invalid("color_hex", "color_hex must look like #RRGGBB")
	}
	return color, nil
}

// CreateCategory 创建类别；存在同名启用类别时返回 ErrDuplicateName
func CreateCategory(db *gorm.DB, in models.CategoryCreate) (*models.Category, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	color, err := normalizeColor(in.ColorHex)
	if err != nil {
		return nil, err
	}

	cat := models.Category{Name: name, ColorHex: color, Active: true}
	err = db.Transaction(func(tx *gorm.DB) error {
		taken, err := activeNameTaken(tx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		return tx.Create(&cat).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}

// UpdateCategory 部分更新类别
// 改名或重新启用时若与其他启用类别重名，返回 ErrDuplicateName
func UpdateCategory(db *gorm.DB, id uint, in models.CategoryUpdate) (*models.Category, error) {
	var result *models.Category
	err := db.Transaction(func(tx *gorm.DB) error {
		cat, err := GetCategory(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		name := cat.Name
		if in.Name != nil {
			if name, err = normalizeName(*in.Name); err != nil {
				return err
			}
			if name != cat.Name {
				updates["name"] = name
			}
		}
		if in.ColorHex != nil {
			color, err := normalizeColor(*in.ColorHex)
			if err != nil {
				return err
			}
			updates["color_hex"] = color
		}
		reactivating := false
		if in.Active != nil {
			updates["active"] = *in.Active
			reactivating = *in.Active && !cat.Active
		}

		if _, renamed := updates["name"]; renamed || reactivating {
			taken, err := activeNameTaken(tx, name, cat.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateName
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(cat).Updates(updates).Error; err != nil {
				return err
			}
		}
		result, err = GetCategory(tx, id)
		return err
	})
	if err != nil {
		var vErr *ValidationError
		if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrDuplicateName) || errors.As(err, &vErr) {
			return nil, err
		}
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	return result, nil
}

// ArchiveCategory 归档（软删除）类别，不影响其账单
func ArchiveCategory(db *gorm.DB, id uint) error {
	cat, err := GetCategory(db, id)
	if err != nil {
		return err
	}
	if err := db.Model(cat).Update("active", false).Error; err != nil {
		return fmt.Errorf("archive category %d: %w", id, err)
	}
	return nil
}

// GetOrCreateCategory 返回同名的启用类别，不存在则用给定颜色创建
func GetOrCreateCategory(db *gorm.DB, name, colorHex string) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	cat, err := GetCategoryByName(db, name)
	if err != nil {
		return nil, err
	}
	if cat != nil {
		return cat, nil
	}
	return CreateCategory(db, models.CategoryCreate{Name: name, ColorHex: colorHex})
}
