package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequisitionStatus enum constants. The workflow moves strictly forward along
// pending-warden -> pending-dean -> approved-by-dean -> completed, with
// reject/return/cancel branches. Rejections, completed and cancelled are terminal.
const (
	ReqStatusPendingCaretaker    = "pending-caretaker"
	ReqStatusPendingWarden       = "pending-warden"
	ReqStatusApprovedByWarden    = "approved-by-warden"
	ReqStatusRejectedByWarden    = "rejected-by-warden"
	ReqStatusReturnedToCaretaker = "returned-to-caretaker"
	ReqStatusPendingDean         = "pending-dean"
	ReqStatusApprovedByDean      = "approved-by-dean"
	ReqStatusRejectedByDean      = "rejected-by-dean"
	ReqStatusPendingAdmin        = "pending-admin"
	ReqStatusCompleted           = "completed"
	ReqStatusCancelled           = "cancelled"
)

// RequisitionCategory enum constants
const (
	ReqCategoryMaintenance    = "maintenance"
	ReqCategoryRepair         = "repair"
	ReqCategoryInventory      = "inventory"
	ReqCategoryInfrastructure = "infrastructure"
	ReqCategoryEquipment      = "equipment"
	ReqCategoryOther          = "other"
)

// RequisitionUrgency enum constants
const (
	ReqUrgencyLow      = "low"
	ReqUrgencyMedium   = "medium"
	ReqUrgencyHigh     = "high"
	ReqUrgencyCritical = "critical"
)

// Approval history actions
const (
	ReqActionApproved  = "approved"
	ReqActionRejected  = "rejected"
	ReqActionReturned  = "returned"
	ReqActionForwarded = "forwarded"
	ReqActionComplete  = "complete"
	ReqActionCancelled = "cancelled"
)

// Attachment types
const (
	AttachmentTypeEstimate = "estimate"
	AttachmentTypeInvoice  = "invoice"
	AttachmentTypeProof    = "proof"
	AttachmentTypeOther    = "other"
)

// Requisition is a maintenance/fund request routed through the fixed
// caretaker -> warden -> dean -> admin approval chain. It belongs to exactly
// one hostel for its entire lifetime and is never physically deleted;
// cancellation is a terminal status. Version guards every write: a transition
// is applied only if the row still carries the version it was read at.
type Requisition struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequisitionNo   string              `gorm:"type:varchar(30);uniqueIndex;not null" json:"requisition_no"` // e.g. REQ-MB2K3X-7F2Q1
	Title           string              `gorm:"type:varchar(100);not null" json:"title"`
	Description     string              `gorm:"type:text;not null" json:"description"`
	Category        string              `gorm:"type:varchar(20);not null;index" json:"category"`
	Urgency         string              `gorm:"type:varchar(10);not null;default:'medium'" json:"urgency"`
	EstimatedAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null" json:"estimated_amount"`
	ActualAmount    decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"actual_amount"` // set at completion, or from dean budget allocation
	Status          string              `gorm:"type:varchar(30);not null;default:'pending-warden';index" json:"status"`
	HostelID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"hostel_id"`
	Hostel          *Hostel             `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
	RequestedBy     uuid.UUID           `gorm:"type:uuid;not null;index" json:"requested_by"`
	Requester       *User               `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`

	// Workflow attribution, each set exactly once, the first time that role acts.
	ApprovedByWarden *uuid.UUID `gorm:"type:uuid" json:"approved_by_warden"`
	ApprovedByDean   *uuid.UUID `gorm:"type:uuid" json:"approved_by_dean"`
	ProcessedByAdmin *uuid.UUID `gorm:"type:uuid" json:"processed_by_admin"`

	Approvals   []RequisitionApproval   `gorm:"foreignKey:RequisitionID" json:"approval_history"`
	Attachments []RequisitionAttachment `gorm:"foreignKey:RequisitionID" json:"attachments"`

	Version     int        `gorm:"not null;default:0" json:"version"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RequisitionApproval is one entry of the append-only audit ledger. Rows are
// inserted in the same transaction as the status change and never updated.
type RequisitionApproval struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequisitionID uuid.UUID `gorm:"type:uuid;not null;index" json:"requisition_id"`
	Seq           int       `gorm:"not null" json:"seq"` // 1-based position in the ledger
	ApprovedBy    uuid.UUID `gorm:"type:uuid;not null" json:"approved_by"`
	Approver      *User     `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	Role          Role      `gorm:"type:varchar(20);not null" json:"role"`
	Action        string    `gorm:"type:varchar(20);not null" json:"action"`
	Comments      string    `gorm:"type:text" json:"comments"`
	Timestamp     time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// RequisitionAttachment holds a proof-of-payment or estimate document reference.
type RequisitionAttachment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequisitionID uuid.UUID `gorm:"type:uuid;not null;index" json:"requisition_id"`
	URL           string    `gorm:"type:varchar(512);not null" json:"url"`
	Filename      string    `gorm:"type:varchar(255)" json:"filename"`
	Type          string    `gorm:"type:varchar(10);not null;default:'other'" json:"type"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsTerminalReqStatus reports whether no further workflow action is accepted.
func IsTerminalReqStatus(status string) bool {
	switch status {
	case ReqStatusCompleted, ReqStatusCancelled, ReqStatusRejectedByWarden, ReqStatusRejectedByDean:
		return true
	default:
		return false
	}
}

// ValidReqCategory reports whether the category is one of the closed set.
func ValidReqCategory(c string) bool {
	switch c {
	case ReqCategoryMaintenance, ReqCategoryRepair, ReqCategoryInventory,
		ReqCategoryInfrastructure, ReqCategoryEquipment, ReqCategoryOther:
		return true
	default:
		return false
	}
}

// ValidReqUrgency reports whether the urgency is one of the closed set.
func ValidReqUrgency(u string) bool {
	switch u {
	case ReqUrgencyLow, ReqUrgencyMedium, ReqUrgencyHigh, ReqUrgencyCritical:
		return true
	default:
		return false
	}
}
