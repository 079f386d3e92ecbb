package model

import (
	"time"

	"github.com/google/uuid"
)

// NoticeType enum constants
const (
	NoticeTypeGeneral     = "general"
	NoticeTypeUrgent      = "urgent"
	NoticeTypeEvent       = "event"
	NoticeTypeMaintenance = "maintenance"
	NoticeTypeFee         = "fee"
	NoticeTypeExam        = "exam"
	NoticeTypeHoliday     = "holiday"
)

// Notice is a published announcement targeted at roles and/or hostels.
// AudienceRoles may contain "all" to reach everyone.
type Notice struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Type            string     `gorm:"type:varchar(15);not null;default:'general'" json:"type"`
	Priority        string     `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	AudienceRoles   StringList `gorm:"type:jsonb" json:"audience_roles"`
	AudienceHostels StringList `gorm:"type:jsonb" json:"audience_hostels"` // hostel ids; empty means all hostels
	PublishedBy     uuid.UUID  `gorm:"type:uuid;not null;index" json:"published_by"`
	Publisher       *User      `gorm:"foreignKey:PublishedBy" json:"publisher,omitempty"`
	PublishedAt     time.Time  `gorm:"autoCreateTime" json:"published_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
	IsActive        bool       `gorm:"not null;default:true;index" json:"is_active"`
	IsPinned        bool       `gorm:"not null;default:false" json:"is_pinned"`
	ViewCount       int        `gorm:"not null;default:0" json:"view_count"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
