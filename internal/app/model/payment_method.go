package model

import (
	"gorm.io/gorm"
)

type PaymentMethod struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Enabled   bool           `gorm:"default:true" json:"enabled"`
	CreatedAt int64          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt int64          `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
