package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type PublishNoticeDTO struct {
	Title           string     `json:"title" binding:"required"`
	Content         string     `json:"content" binding:"required"`
	Type            string     `json:"type" binding:"omitempty,oneof=general urgent event maintenance fee exam holiday"`
	Priority        string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	AudienceRoles   []string   `json:"audience_roles"`
	AudienceHostels []string   `json:"audience_hostels"`
	ExpiresAt       *time.Time `json:"expires_at"`
	IsPinned        bool       `json:"is_pinned"`
}

// NoticeService publishes announcements and serves the active board for a
// viewer's role and hostel.
type NoticeService interface {
	Publish(ctx context.Context, publisherID uuid.UUID, dto PublishNoticeDTO) (*model.Notice, error)
	ListActive(ctx context.Context, viewerRole model.Role, hostelID *uuid.UUID, page, limit int) ([]model.Notice, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Notice, error)
	Unpublish(ctx context.Context, id uuid.UUID) error
}

type noticeService struct {
	db    *gorm.DB
	audit AuditService
	log   *zap.Logger
}

func NewNoticeService(db *gorm.DB, audit AuditService, log *zap.Logger) NoticeService {
	return &noticeService{db: db, audit: audit, log: log}
}

func (s *noticeService) Publish(ctx context.Context, publisherID uuid.UUID, dto PublishNoticeDTO) (*model.Notice, error) {
	noticeType := dto.Type
	if noticeType == "" {
		noticeType = model.NoticeTypeGeneral
	}
	priority := dto.Priority
	if priority == "" {
		priority = "medium"
	}
	roles := dto.AudienceRoles
	if len(roles) == 0 {
		roles = []string{"all"}
	}

	n := &model.Notice{
		Title:           dto.Title,
		Content:         dto.Content,
		Type:            noticeType,
		Priority:        priority,
		AudienceRoles:   roles,
		AudienceHostels: dto.AudienceHostels,
		PublishedBy:     publisherID,
		ExpiresAt:       dto.ExpiresAt,
		IsActive:        true,
		IsPinned:        dto.IsPinned,
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to publish notice: %w", err)
	}

	s.audit.Record(ctx, &publisherID, model.ActionPublishNotice, n.ID.String(), n.Title, map[string]interface{}{
		"type": noticeType,
	})
	s.log.Info("notice published", zap.String("title", n.Title), zap.String("type", noticeType))
	return n, nil
}

// ListActive returns unexpired active notices visible to the viewer, pinned
// first. Hostel targeting is best-effort: notices with no hostel list reach
// everyone.
func (s *noticeService) ListActive(ctx context.Context, viewerRole model.Role, hostelID *uuid.UUID, page, limit int) ([]model.Notice, int64, error) {
	now := time.Now()
	query := s.db.WithContext(ctx).Model(&model.Notice{}).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where("audience_roles @> ? OR audience_roles @> ?",
			fmt.Sprintf(`["%s"]`, viewerRole), `["all"]`)
	if hostelID != nil {
		query = query.Where("audience_hostels = '[]' OR audience_hostels IS NULL OR audience_hostels @> ?",
			fmt.Sprintf(`["%s"]`, hostelID.String()))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notices: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var notices []model.Notice
	err := query.
		Preload("Publisher").
		Order("is_pinned DESC, published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notices: %w", err)
	}
	return notices, total, nil
}

func (s *noticeService) Get(ctx context.Context, id uuid.UUID) (*model.Notice, error) {
	var n model.Notice
	err := s.db.WithContext(ctx).Preload("Publisher").First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("notice not found")
		}
		return nil, fmt.Errorf("failed to load notice: %w", err)
	}

	// View counting is advisory, a lost increment is fine.
	s.db.WithContext(ctx).Model(&model.Notice{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))
	return &n, nil
}

func (s *noticeService) Unpublish(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&model.Notice{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to unpublish notice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("notice not found")
	}
	return nil
}
