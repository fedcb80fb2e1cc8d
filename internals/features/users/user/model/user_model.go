package model

import (
	"time"

	"github.com/google/uuid"

	"capstonehub_backend/internals/constants"
)

// UserModel represents the users table
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName      string    `gorm:"size:50;not null;unique" json:"user_name" validate:"required,min=3,max=50"`
	FullName      string    `gorm:"size:100;not null" json:"full_name" validate:"required,max=100"`
	Email         string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password      string    `gorm:"not null" json:"-"`
	GoogleID      *string   `gorm:"size:255;unique" json:"google_id,omitempty"`
	Role          string    `gorm:"type:varchar(20);not null;default:'STUDENT'" json:"role"`
	StudentNumber *string   `gorm:"size:20;unique" json:"student_number,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues fills defaults before validation
func (u *UserModel) SetDefaultValues() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
}
