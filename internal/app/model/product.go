package model

import (
	"gorm.io/gorm"
)

// Product prices are whole rupiah (no decimal subunit in IDR).
type Product struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	SKU        string         `gorm:"uniqueIndex;not null" json:"sku"`
	Price      int64          `gorm:"not null" json:"price"`
	Image      string         `json:"image"`
	MinOrder   int            `gorm:"default:1" json:"minOrder"`
	CategoryID uint           `gorm:"not null;index" json:"categoryId"`
	CreatedAt  int64          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  int64          `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
