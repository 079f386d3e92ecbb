package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind enum constants
const (
	NotificationKindComplaint   = "complaint"
	NotificationKindRequisition = "requisition"
	NotificationKindPayment     = "payment"
	NotificationKindRequest     = "request"
	NotificationKindNotice      = "notice"
	NotificationKindSystem      = "system"
)

// Notification is a persisted per-user message; delivery over the websocket
// hub is best-effort on top of the stored row.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Kind      string     `gorm:"type:varchar(15);not null;index" json:"kind"`
	RelatedID *uuid.UUID `gorm:"type:uuid" json:"related_id"`
	Priority  string     `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	IsRead    bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}
