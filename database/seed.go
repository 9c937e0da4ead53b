package database

import (
	"billsmith/models"

	"gorm.io/gorm"
)

// SeedDefaultCategories 仅当类别表为空时写入默认类别，返回新建数量
func SeedDefaultCategories(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	defaults := models.DefaultCategories()
	cats := make([]models.Category, 0, len(defaults))
	for _, d := range defaults {
		cats = append(cats, models.Category{Name: d.Name, ColorHex: d.ColorHex, Active: true})
	}
	if err := db.Create(&cats).Error; err != nil {
		return 0, err
	}
	return len(cats), nil
}
