package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 收支类别
//
// (Name, Type) 组合唯一。系统默认类别由数据库初始化时写入，不可删除。
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex:idx_category_name_type"`
	Type      int            `json:"type" gorm:"not null;uniqueIndex:idx_category_name_type"` // 0=支出，1=收入
	Icon      string         `json:"icon" gorm:"size:50"`
	Sort      int            `json:"sort" gorm:"default:0;index"`                             // 升序展示
	IsDefault bool           `json:"is_default" gorm:"default:false"`                         // 系统默认类别，禁止删除
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// DefaultExpenseCategories 系统默认支出类别（按展示顺序）
func DefaultExpenseCategories() []string {
	return []string{"餐饮", "交通", "购物", "娱乐", "居住", "通讯", "医疗", "教育", "人情", "其他"}
}

// DefaultIncomeCategories 系统默认收入类别（按展示顺序）
func DefaultIncomeCategories() []string {
	return []string{"工资", "奖金", "投资", "兼职", "红包", "其他"}
}
