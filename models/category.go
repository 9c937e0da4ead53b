package models

import (
	"time"
)

// DefaultColorHex 未指定颜色时使用的默认蓝色
const DefaultColorHex = "#2222FF"

// Category 账单类别，只做软删除（active=false）
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;index"`
	ColorHex  string    `json:"color_hex" gorm:"size:7;not null;default:#2222FF"`
	Active    bool      `json:"active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// CategoryCreate 创建类别请求
type CategoryCreate struct {
	Name     string `json:"name" binding:"required,max=100" example:"Electricity"`
	ColorHex string `json:"color_hex" binding:"omitempty,hexcolor,len=7" example:"#FFB800"`
}

// CategoryUpdate 更新类别请求，nil 表示不修改
type CategoryUpdate struct {
	Name     *string `json:"name" binding:"omitempty,max=100" example:"Power"`
	ColorHex *string `json:"color_hex" binding:"omitempty,hexcolor,len=7" example:"#FF0000"`
	Active   *bool   `json:"active" example:"true"`
}

// CategoryBrief 仪表盘中的类别摘要
type CategoryBrief struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"color_hex"`
}

// Brief 返回类别摘要
func (c Category) Brief() CategoryBrief {
	return CategoryBrief{ID: c.ID, Name: c.Name, ColorHex: c.ColorHex}
}

// DefaultCategory 初始化时写入的默认类别
type DefaultCategory struct {
	Name     string
	ColorHex string
}

// DefaultCategories 首次启动时的默认类别
func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{"Electricity", "#FFB800"},
		{"Water", "#00B4FF"},
		{"Gas", "#FF6B00"},
		{"Rent", "#2222FF"},
		{"Internet", "#9C27B0"},
		{"Phone", "#4CAF50"},
	}
}
