package service

import (
	"context"
	"errors"
	"fmt"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"
	"hosteladmin/pkg/ids"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateComplaintDTO struct {
	Title       string    `json:"title" binding:"required,min=5,max=100"`
	Description string    `json:"description" binding:"required,min=10,max=1000"`
	Category    string    `json:"category" binding:"required,oneof=mess infrastructure water electricity wifi sanitation transport other"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	HostelID    uuid.UUID `json:"hostel_id" binding:"required"`
	RoomNumber  string    `json:"room_number"`
}

type UpdateComplaintDTO struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type ComplaintFilter struct {
	HostelID  *uuid.UUID
	StudentID *uuid.UUID
	Status    string
	Category  string
	Page      int
	Limit     int
}

// ComplaintService lets students file complaints and staff work them.
type ComplaintService interface {
	Create(ctx context.Context, studentID uuid.UUID, dto CreateComplaintDTO) (*model.Complaint, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, int64, error)
	UpdateStatus(ctx context.Context, id, actorID uuid.UUID, actorRole model.Role, dto UpdateComplaintDTO) (*model.Complaint, error)
}

type complaintService struct {
	db       *gorm.DB
	hostels  repository.HostelRepository
	audit    AuditService
	notifier Notifier
	log      *zap.Logger
}

func NewComplaintService(db *gorm.DB, hostels repository.HostelRepository, audit AuditService, notifier Notifier, log *zap.Logger) ComplaintService {
	return &complaintService{db: db, hostels: hostels, audit: audit, notifier: notifier, log: log}
}

func (s *complaintService) Create(ctx context.Context, studentID uuid.UUID, dto CreateComplaintDTO) (*model.Complaint, error) {
	if _, err := s.hostels.GetByID(ctx, dto.HostelID); err != nil {
		return nil, err
	}

	priority := dto.Priority
	if priority == "" {
		priority = model.ComplaintPriorityMedium
	}

	c := &model.Complaint{
		ComplaintNo: ids.New("CMP"),
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		Priority:    priority,
		Status:      model.ComplaintStatusPending,
		StudentID:   studentID,
		HostelID:    dto.HostelID,
		RoomNumber:  dto.RoomNumber,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	s.log.Info("complaint filed",
		zap.String("complaint_no", c.ComplaintNo),
		zap.String("category", c.Category))
	return c, nil
}

func (s *complaintService) Get(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	var c model.Complaint
	err := s.db.WithContext(ctx).
		Preload("Student").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC") }).
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("complaint not found")
		}
		return nil, fmt.Errorf("failed to load complaint: %w", err)
	}
	return &c, nil
}

func (s *complaintService) List(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Complaint{})
	if filter.HostelID != nil {
		query = query.Where("hostel_id = ?", *filter.HostelID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	page := filter.Page
	limit := filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var complaints []model.Complaint
	err := query.
		Preload("Student").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&complaints).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch complaints: %w", err)
	}
	return complaints, total, nil
}

// UpdateStatus moves a complaint through its lifecycle. Staff authority is
// checked against the complaint's hostel; the student is notified after the
// update lands.
func (s *complaintService) UpdateStatus(ctx context.Context, id, actorID uuid.UUID, actorRole model.Role, dto UpdateComplaintDTO) (*model.Complaint, error) {
	if !model.ValidComplaintStatus(dto.Status) {
		return nil, apperr.Validationf("invalid status %q", dto.Status)
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	authorized, err := s.hostels.IsActorAuthorized(ctx, actorID, actorRole, c.HostelID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, apperr.Forbiddenf("%s has no authority over this hostel", actorRole)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": dto.Status, "assigned_to": actorID}
		if dto.Status == model.ComplaintStatusResolved {
			now := timeNow()
			updates["resolved_at"] = now
			updates["resolved_by"] = actorID
		}
		if err := tx.Model(&model.Complaint{}).Where("id = ?", c.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update complaint: %w", err)
		}

		if dto.Comment != "" {
			comment := model.ComplaintComment{
				ComplaintID: c.ID,
				UserID:      actorID,
				Comment:     dto.Comment,
			}
			if err := tx.Create(&comment).Error; err != nil {
				return fmt.Errorf("failed to add comment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actorID, model.ActionUpdateComplaint, c.ComplaintNo, c.Title, map[string]interface{}{
		"status": dto.Status,
	})
	s.notifier.Notify(c.StudentID, model.NotificationKindComplaint, NotificationPayload{
		Title:     "Complaint Updated",
		Message:   fmt.Sprintf("Your complaint %q status: %s", c.Title, dto.Status),
		RelatedID: &c.ID,
	})

	return s.Get(ctx, id)
}
