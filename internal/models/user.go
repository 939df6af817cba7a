package models

import "time"

// ActorType identifies who performed an operation.
type ActorType string

const (
	ActorAdmin  ActorType = "ADMIN"
	ActorMudur  ActorType = "MUDUR"
	ActorParent ActorType = "PARENT"
)

// Actor is the authenticated identity passed into every mutating operation.
type Actor struct {
	ID       string    `json:"id"`
	Type     ActorType `json:"type"`
	SchoolID string    `json:"school_id,omitempty"`
}

// User is a staff account: a central admin or a school director (mudur).
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"omitempty,email"`
	FullName  string    `json:"full_name" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Type      ActorType `json:"type" gorm:"type:varchar(16);index;not null"`
	SchoolID  *string   `json:"school_id,omitempty" gorm:"type:varchar(36);index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor returns the identity carried in tokens for this user.
func (u *User) Actor() Actor {
	a := Actor{ID: u.ID, Type: u.Type}
	if u.SchoolID != nil {
		a.SchoolID = *u.SchoolID
	}
	return a
}
