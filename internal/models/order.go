package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one parent's purchase for one student in one class.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;type:varchar(32);not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(32);index;not null"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	StudentName     string          `json:"student_name" gorm:"type:varchar(150)"`
	ParentName      string          `json:"parent_name" gorm:"type:varchar(150)"`
	ParentPhone     string          `json:"parent_phone" gorm:"type:varchar(32);index"`
	ParentEmail     string          `json:"parent_email" gorm:"type:varchar(255)"`
	DeliveryAddress string          `json:"delivery_address" gorm:"type:text"`
	CargoTrackingNo *string         `json:"cargo_tracking_no,omitempty" gorm:"type:varchar(64)"`
	ClassID         string          `json:"class_id" gorm:"type:varchar(36);index;not null"`
	Class           *Class          `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	PackageID       *string         `json:"package_id,omitempty" gorm:"type:varchar(36);index"`
	Package         *Package        `json:"package,omitempty" gorm:"foreignKey:PackageID"`
	CreatedAt       time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderFilter narrows order listings. Zero values match everything.
type OrderFilter struct {
	Status   OrderStatus `query:"status"`
	SchoolID string      `query:"schoolId"`
	ClassID  string      `query:"classId"`
	From     *time.Time  `query:"-"`
	To       *time.Time  `query:"-"`
}

// CancelRequest tracks a request to cancel an order.
type CancelRequest struct {
	ID              string              `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID         string              `json:"order_id" gorm:"type:varchar(36);index;not null"`
	Order           *Order              `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Reason          string              `json:"reason" gorm:"type:text"`
	Status          CancelRequestStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	AdminNote       string              `json:"admin_note" gorm:"type:text"`
	RequestedByID   string              `json:"requested_by_id" gorm:"type:varchar(64)"`
	RequestedByType ActorType           `json:"requested_by_type" gorm:"type:varchar(16)"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	ProcessedAt     *time.Time          `json:"processed_at,omitempty"`
}
