package service

import (
	"fmt"
	"time"

	"billsmith/models"

	"gorm.io/gorm"
)

// DueSoon 到期日在 [today, today+days] 内的账单，按到期日升序
func DueSoon(db *gorm.DB, now time.Time, days int) ([]models.Bill, error) {
	if days < 0 {
		days = 0
	}
	today := models.DateOf(now.UTC())
	until := models.DateOf(today.AddDate(0, 0, days))

	bills := []models.Bill{}
	err := db.Preload("Category").
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", today, until).
		Order("due_date ASC, id ASC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("due soon: %w", err)
	}
	return bills, nil
}
