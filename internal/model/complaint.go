package model

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintCategory enum constants
const (
	ComplaintCategoryMess           = "mess"
	ComplaintCategoryInfrastructure = "infrastructure"
	ComplaintCategoryWater          = "water"
	ComplaintCategoryElectricity    = "electricity"
	ComplaintCategoryWifi           = "wifi"
	ComplaintCategorySanitation     = "sanitation"
	ComplaintCategoryTransport      = "transport"
	ComplaintCategoryOther          = "other"
)

// ComplaintStatus enum constants
const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusRejected   = "rejected"
	ComplaintStatusForwarded  = "forwarded"
)

// ComplaintPriority enum constants
const (
	ComplaintPriorityLow    = "low"
	ComplaintPriorityMedium = "medium"
	ComplaintPriorityHigh   = "high"
	ComplaintPriorityUrgent = "urgent"
)

// Complaint is filed by a student against their hostel and worked by
// caretakers/wardens assigned to that hostel.
type Complaint struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ComplaintNo string             `gorm:"type:varchar(30);uniqueIndex;not null" json:"complaint_no"`
	Title       string             `gorm:"type:varchar(100);not null" json:"title"`
	Description string             `gorm:"type:text;not null" json:"description"`
	Category    string             `gorm:"type:varchar(20);not null;index" json:"category"`
	Priority    string             `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status      string             `gorm:"type:varchar(15);not null;default:'pending';index" json:"status"`
	StudentID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"`
	Student     *User              `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	HostelID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"hostel_id"`
	Hostel      *Hostel            `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
	RoomNumber  string             `gorm:"type:varchar(20)" json:"room_number"`
	AssignedTo  *uuid.UUID         `gorm:"type:uuid" json:"assigned_to"`
	Comments    []ComplaintComment `gorm:"foreignKey:ComplaintID" json:"comments,omitempty"`
	ResolvedAt  *time.Time         `json:"resolved_at"`
	ResolvedBy  *uuid.UUID         `gorm:"type:uuid" json:"resolved_by"`
	CreatedAt   time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// ComplaintComment is a staff or student remark on a complaint thread.
type ComplaintComment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ComplaintID uuid.UUID `gorm:"type:uuid;not null;index" json:"complaint_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comment     string    `gorm:"type:text;not null" json:"comment"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// ValidComplaintStatus reports whether the status is one of the closed set.
func ValidComplaintStatus(s string) bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved,
		ComplaintStatusRejected, ComplaintStatusForwarded:
		return true
	default:
		return false
	}
}
