package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType enum constants
const (
	PaymentTypeHostelFee       = "hostel_fee"
	PaymentTypeMessFee         = "mess_fee"
	PaymentTypeSecurityDeposit = "security_deposit"
	PaymentTypeFine            = "fine"
	PaymentTypeOther           = "other"
)

// PaymentStatus enum constants
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// PaymentMethod enum constants
const (
	PaymentMethodUPI        = "upi"
	PaymentMethodCard       = "card"
	PaymentMethodNetbanking = "netbanking"
	PaymentMethodWallet     = "wallet"
	PaymentMethodCash       = "cash"
)

// Payment is a fee record for a student. Gateway order/signature handling
// lives outside this system; here a payment is created as a due and later
// marked completed by an admin.
type Payment struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PaymentNo    string              `gorm:"type:varchar(30);uniqueIndex;not null" json:"payment_no"`
	StudentID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"student_id"`
	Student      *User               `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	HostelID     *uuid.UUID          `gorm:"type:uuid;index" json:"hostel_id"`
	Amount       decimal.Decimal     `gorm:"type:decimal(18,4);not null" json:"amount"`
	PaymentType  string              `gorm:"type:varchar(20);not null" json:"payment_type"`
	PaymentMethod string             `gorm:"type:varchar(15)" json:"payment_method,omitempty"`
	Status       string              `gorm:"type:varchar(15);not null;default:'pending';index" json:"status"`
	Description  string              `gorm:"type:text" json:"description"`
	Semester     string              `gorm:"type:varchar(20)" json:"semester"`
	AcademicYear string              `gorm:"type:varchar(10)" json:"academic_year"`
	DueDate      *time.Time          `json:"due_date"`
	PaidAt       *time.Time          `json:"paid_at"`
	RefundedAt   *time.Time          `json:"refunded_at"`
	RefundAmount decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"refund_amount"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
