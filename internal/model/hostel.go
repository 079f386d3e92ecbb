package model

import (
	"time"

	"github.com/google/uuid"
)

// HostelType enum constants
const (
	HostelTypeBoys  = "boys"
	HostelTypeGirls = "girls"
	HostelTypeMixed = "mixed"
)

// Hostel is a dormitory building. Wardens and caretakers are scoped to the
// hostel they are assigned to; that assignment is the basis of every
// authorization check in the requisition workflow.
type Hostel struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name"`
	Code             string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Type             string     `gorm:"type:varchar(10);not null" json:"type"` // boys, girls, mixed
	TotalRooms       int        `gorm:"not null" json:"total_rooms"`
	TotalCapacity    int        `gorm:"not null" json:"total_capacity"`
	OccupiedCapacity int        `gorm:"not null;default:0" json:"occupied_capacity"`
	WardenID         *uuid.UUID `gorm:"type:uuid;index" json:"warden_id"`
	Warden           *User      `gorm:"foreignKey:WardenID" json:"warden,omitempty"`
	Caretakers       []User     `gorm:"many2many:hostel_caretakers;" json:"caretakers,omitempty"`
	Facilities       StringList `gorm:"type:jsonb" json:"facilities"`
	Address          string     `gorm:"type:text" json:"address"`
	ContactNumber    string     `gorm:"type:varchar(20)" json:"contact_number"`
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
