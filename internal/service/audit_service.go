package service

import (
	"context"
	"encoding/json"
	"fmt"

	"hosteladmin/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	Action string
	UserID *uuid.UUID
	Page   int
	Limit  int
}

// AuditService records and lists audit trail entries. Record is best-effort:
// a failed write is logged, never surfaced to the caller.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details map[string]interface{})
	List(ctx context.Context, filter AuditFilter) ([]model.AuditLog, int64, error)
}

type auditService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuditService(db *gorm.DB, log *zap.Logger) AuditService {
	return &auditService{db: db, log: log}
}

func (s *auditService) Record(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details map[string]interface{}) {
	payload, _ := json.Marshal(details)
	entry := model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Error("failed to write audit log",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

func (s *auditService) List(ctx context.Context, filter AuditFilter) ([]model.AuditLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	page := filter.Page
	limit := filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var logs []model.AuditLog
	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	return logs, total, nil
}
