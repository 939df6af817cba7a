package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryType decides where a school's orders are shipped.
type DeliveryType string

const (
	DeliveryCargo  DeliveryType = "CARGO"
	DeliverySchool DeliveryType = "SCHOOL"
)

// School is an institution whose classes order packages.
type School struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string       `json:"name" gorm:"type:varchar(200);not null" validate:"required,min=2,max=200"`
	Address      string       `json:"address" gorm:"type:text" validate:"omitempty,max=500"`
	Phone        string       `json:"phone" gorm:"type:varchar(32)" validate:"omitempty,max=32"`
	DeliveryType DeliveryType `json:"delivery_type" gorm:"type:varchar(16);not null" validate:"required,oneof=CARGO SCHOOL"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Class is a group of students sharing one access password.
type Class struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SchoolID  string    `json:"school_id" gorm:"type:varchar(36);index;not null" validate:"required"`
	School    *School   `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Password  string    `json:"password" gorm:"type:varchar(32);uniqueIndex;not null" validate:"omitempty,min=4,max=32"`
	PackageID *string   `json:"package_id,omitempty" gorm:"type:varchar(36)"`
	Package   *Package  `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Package is a priced bundle of supply items.
type Package struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(200);not null" validate:"required,min=2,max=200"`
	Description string          `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Active      bool            `json:"active" gorm:"not null;default:true"`
	Items       []PackageItem   `json:"items" gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" validate:"dive"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PackageItem is one line of a package.
type PackageItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PackageID string `json:"package_id" gorm:"type:varchar(36);index;not null"`
	Name      string `json:"name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Quantity  int    `json:"quantity" gorm:"not null" validate:"gte=1"`
}

// SchoolPayment is a billing record between the platform and a school.
type SchoolPayment struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SchoolID    string          `json:"school_id" gorm:"type:varchar(36);index;not null"`
	School      *School         `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status      PaymentStatus   `json:"status" gorm:"type:varchar(16);index;not null"`
	Description string          `json:"description" gorm:"type:text"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	SchoolID string        `query:"schoolId"`
	Status   PaymentStatus `query:"status"`
}
