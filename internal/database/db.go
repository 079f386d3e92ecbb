package database

import (
	"log"

	"hosteladmin/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Hostel{},
		&model.Room{},
		&model.Requisition{},
		&model.RequisitionApproval{},
		&model.RequisitionAttachment{},
		&model.Complaint{},
		&model.ComplaintComment{},
		&model.Notice{},
		&model.Payment{},
		&model.TransferRequest{},
		&model.Notification{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
