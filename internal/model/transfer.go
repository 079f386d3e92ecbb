package model

import (
	"time"

	"github.com/google/uuid"
)

// TransferType enum constants
const (
	TransferTypeRoomChange     = "room_change"
	TransferTypeHostelChange   = "hostel_change"
	TransferTypeRoommateChange = "roommate_change"
)

// TransferStatus enum constants
const (
	TransferStatusPending    = "pending"
	TransferStatusApproved   = "approved"
	TransferStatusRejected   = "rejected"
	TransferStatusProcessing = "processing"
	TransferStatusCompleted  = "completed"
)

// TransferRequest is a student's room/hostel change request, reviewed by the
// warden of the student's current hostel.
type TransferRequest struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestNo         string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"request_no"`
	RequestType       string     `gorm:"type:varchar(20);not null" json:"request_type"`
	StudentID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	Student           *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CurrentHostelID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"current_hostel_id"`
	CurrentHostel     *Hostel    `gorm:"foreignKey:CurrentHostelID" json:"current_hostel,omitempty"`
	CurrentRoomID     *uuid.UUID `gorm:"type:uuid" json:"current_room_id"`
	RequestedHostelID *uuid.UUID `gorm:"type:uuid" json:"requested_hostel_id"`
	RequestedRoomID   *uuid.UUID `gorm:"type:uuid" json:"requested_room_id"`
	Reason            string     `gorm:"type:text;not null" json:"reason"`
	Status            string     `gorm:"type:varchar(15);not null;default:'pending';index" json:"status"`
	Priority          string     `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	ReviewedBy        *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer          *User      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewComments    string     `gorm:"type:text" json:"review_comments"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
