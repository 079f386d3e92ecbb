package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the central account entity for every role (students and staff alike).
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string         `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Role         Role           `gorm:"type:varchar(20);not null;index" json:"role"`
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`
	ProfileImage string         `gorm:"type:varchar(512)" json:"profile_image,omitempty"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time     `json:"last_login,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}
