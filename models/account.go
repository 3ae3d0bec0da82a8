package models

import (
	"time"

	"gorm.io/gorm"
)

// Account 账本
//
// 记录按账本归属，删除账本时其下记录一并删除。
type Account struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"size:50;not null"`
	Icon      string         `json:"icon" gorm:"size:50"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	IsDefault bool           `json:"is_default" gorm:"default:false"` // 默认账本，禁止删除
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Account) TableName() string {
	return "accounts"
}
