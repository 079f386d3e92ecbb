package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomType enum constants
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeTriple = "triple"
	RoomTypeQuad   = "quad"
)

// RoomStatus enum constants
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusReserved    = "reserved"
)

// Room belongs to exactly one hostel. Room numbers are unique per hostel.
type Room struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomNumber       string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_room_hostel_number" json:"room_number"`
	HostelID         uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_room_hostel_number" json:"hostel_id"`
	Hostel           *Hostel         `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
	Floor            int             `json:"floor"`
	Capacity         int             `gorm:"not null" json:"capacity"`
	CurrentOccupancy int             `gorm:"not null;default:0" json:"current_occupancy"`
	Occupants        []User          `gorm:"many2many:room_occupants;" json:"occupants,omitempty"`
	RoomType         string          `gorm:"type:varchar(10)" json:"room_type"`
	Facilities       StringList      `gorm:"type:jsonb" json:"facilities"`
	Status           string          `gorm:"type:varchar(15);not null;default:'available';index" json:"status"`
	MonthlyRent      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"monthly_rent"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
