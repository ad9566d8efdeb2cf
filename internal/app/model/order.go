package model

import (
	"gorm.io/gorm"
)

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	InvoiceNumber   string         `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	UserID          uint           `gorm:"not null;index" json:"userId"`
	PaymentMethodID uint           `gorm:"not null;index" json:"paymentMethodId"`
	TotalAmounts    int            `gorm:"not null" json:"totalAmounts"` // sum of item quantities
	TotalPrice      int64          `gorm:"not null" json:"totalPrice"`   // sum of item subtotals, IDR
	CreatedAt       int64          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       int64          `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"paymentMethod,omitempty"`
	OrderItems    []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem keeps the unit price at checkout time; later catalog edits do
// not rewrite past receipts.
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"orderId"`
	ProductID uint           `gorm:"not null;index" json:"productId"`
	UnitPrice int64          `gorm:"not null" json:"unitPrice"`
	Amounts   int            `gorm:"not null" json:"amounts"`
	SubTotal  int64          `gorm:"not null" json:"subTotal"`
	CreatedAt int64          `gorm:"autoCreateTime" json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order    `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
