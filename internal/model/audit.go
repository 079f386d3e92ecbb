package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateUser   = "CREATE_USER"
	ActionUpdateUser   = "UPDATE_USER"
	ActionDeleteUser   = "DELETE_USER"
	ActionCreateHostel = "CREATE_HOSTEL"
	ActionUpdateHostel = "UPDATE_HOSTEL"
	ActionDeleteHostel = "DELETE_HOSTEL"
	ActionCreateRoom   = "CREATE_ROOM"
	ActionAllotRoom    = "ALLOT_ROOM"
	ActionVacateRoom   = "VACATE_ROOM"

	// Requisition workflow actions
	ActionCreateRequisition   = "CREATE_REQUISITION"
	ActionApproveRequisition  = "APPROVE_REQUISITION"
	ActionRejectRequisition   = "REJECT_REQUISITION"
	ActionReturnRequisition   = "RETURN_REQUISITION"
	ActionCompleteRequisition = "COMPLETE_REQUISITION"
	ActionResubmitRequisition = "RESUBMIT_REQUISITION"
	ActionCancelRequisition   = "CANCEL_REQUISITION"

	ActionUpdateComplaint = "UPDATE_COMPLAINT"
	ActionReviewTransfer  = "REVIEW_TRANSFER"
	ActionCreatePayment   = "CREATE_PAYMENT"
	ActionRecordPayment   = "RECORD_PAYMENT"
	ActionPublishNotice   = "PUBLISH_NOTICE"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
