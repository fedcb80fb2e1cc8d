package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel stores the HMAC hash of issued refresh tokens. The raw
// token never touches the database.
type RefreshTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash []byte     `gorm:"type:bytea;not null;index" json:"-"`
	ExpiredAt time.Time  `gorm:"not null" json:"expired_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
