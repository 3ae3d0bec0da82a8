package models

import (
	"time"

	"gorm.io/gorm"
)

// 记录类型常量
const (
	// RecordTypeExpense 支出
	RecordTypeExpense = 0
	// RecordTypeIncome 收入
	RecordTypeIncome = 1
)

// Record 收支记录模型
//
// 每一笔收入或支出记录。金额恒为正数，收支方向由 Type 区分，
// 带符号金额由类型推导，不单独存储。
type Record struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Amount     float64        `json:"amount" gorm:"type:decimal(10,2);not null"` // 金额（正数，单位：元）
	Type       int            `json:"type" gorm:"index;not null"`                // 0=支出，1=收入
	CategoryID *uint          `json:"category_id" gorm:"index"`                  // 类别ID，类别被删除后置为 NULL
	AccountID  uint           `json:"account_id" gorm:"index;not null"`          // 所属账本ID
	Date       time.Time      `json:"date" gorm:"index;not null"`                // 记录日期（精确到天）
	Note       string         `json:"note" gorm:"size:255"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Record) TableName() string {
	return "records"
}

// SignedAmount 带符号金额：支出为负，收入为正
func (r *Record) SignedAmount() float64 {
	if r.Type == RecordTypeExpense {
		return -r.Amount
	}
	return r.Amount
}
