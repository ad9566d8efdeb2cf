package model

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"    // back-office and POS terminal access
	RoleCashier  UserRole = "cashier"  // POS terminal access only
	RoleCustomer UserRole = "customer" // self-registered, no terminal access
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	CreatedAt    int64          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    int64          `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
