package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction is the kind of mutation recorded.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditEntity names the mutated record type.
type AuditEntity string

const (
	EntityOrder         AuditEntity = "ORDER"
	EntityCancelRequest AuditEntity = "CANCEL_REQUEST"
	EntityPayment       AuditEntity = "PAYMENT"
	EntitySchool        AuditEntity = "SCHOOL"
	EntityClass         AuditEntity = "CLASS"
	EntityPackage       AuditEntity = "PACKAGE"
	EntityUser          AuditEntity = "USER"
)

// AuditLog is an append-only trail entry.
type AuditLog struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string         `json:"user_id" gorm:"type:varchar(64);index"`
	UserType  ActorType      `json:"user_type" gorm:"type:varchar(16)"`
	Action    AuditAction    `json:"action" gorm:"type:varchar(16);not null"`
	Entity    AuditEntity    `json:"entity" gorm:"type:varchar(32);index:idx_audit_entity;not null"`
	EntityID  string         `json:"entity_id" gorm:"type:varchar(36);index:idx_audit_entity"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

// AuditFilter narrows audit listings.
type AuditFilter struct {
	Entity   AuditEntity `query:"entity"`
	EntityID string      `query:"entityId"`
	Limit    int         `query:"limit"`
}
