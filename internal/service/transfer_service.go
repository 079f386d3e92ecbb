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

type CreateTransferDTO struct {
	RequestType       string     `json:"request_type" binding:"required,oneof=room_change hostel_change roommate_change"`
	CurrentHostelID   uuid.UUID  `json:"current_hostel_id" binding:"required"`
	CurrentRoomID     *uuid.UUID `json:"current_room_id"`
	RequestedHostelID *uuid.UUID `json:"requested_hostel_id"`
	RequestedRoomID   *uuid.UUID `json:"requested_room_id"`
	Reason            string     `json:"reason" binding:"required,min=10"`
	Priority          string     `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type ReviewTransferDTO struct {
	Action   string `json:"action" binding:"required,oneof=approve reject"`
	Comments string `json:"comments"`
}

type TransferFilter struct {
	HostelID  *uuid.UUID
	StudentID *uuid.UUID
	Type      string
	Status    string
	Page      int
	Limit     int
}

// TransferService manages room/hostel change requests: students file them,
// the warden of the current hostel reviews them.
type TransferService interface {
	Create(ctx context.Context, studentID uuid.UUID, dto CreateTransferDTO) (*model.TransferRequest, error)
	List(ctx context.Context, filter TransferFilter) ([]model.TransferRequest, int64, error)
	Review(ctx context.Context, id, reviewerID uuid.UUID, dto ReviewTransferDTO) (*model.TransferRequest, error)
}

type transferService struct {
	db       *gorm.DB
	hostels  repository.HostelRepository
	audit    AuditService
	notifier Notifier
	log      *zap.Logger
}

func NewTransferService(db *gorm.DB, hostels repository.HostelRepository, audit AuditService, notifier Notifier, log *zap.Logger) TransferService {
	return &transferService{db: db, hostels: hostels, audit: audit, notifier: notifier, log: log}
}

func (s *transferService) Create(ctx context.Context, studentID uuid.UUID, dto CreateTransferDTO) (*model.TransferRequest, error) {
	if _, err := s.hostels.GetByID(ctx, dto.CurrentHostelID); err != nil {
		return nil, err
	}
	if dto.RequestedHostelID != nil {
		if _, err := s.hostels.GetByID(ctx, *dto.RequestedHostelID); err != nil {
			return nil, err
		}
	}

	priority := dto.Priority
	if priority == "" {
		priority = "medium"
	}

	t := &model.TransferRequest{
		RequestNo:         ids.New("RQT"),
		RequestType:       dto.RequestType,
		StudentID:         studentID,
		CurrentHostelID:   dto.CurrentHostelID,
		CurrentRoomID:     dto.CurrentRoomID,
		RequestedHostelID: dto.RequestedHostelID,
		RequestedRoomID:   dto.RequestedRoomID,
		Reason:            dto.Reason,
		Status:            model.TransferStatusPending,
		Priority:          priority,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("failed to create transfer request: %w", err)
	}

	s.log.Info("transfer request filed",
		zap.String("request_no", t.RequestNo),
		zap.String("type", t.RequestType))
	return t, nil
}

func (s *transferService) List(ctx context.Context, filter TransferFilter) ([]model.TransferRequest, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.TransferRequest{})
	if filter.HostelID != nil {
		query = query.Where("current_hostel_id = ?", *filter.HostelID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Type != "" {
		query = query.Where("request_type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transfer requests: %w", err)
	}

	page := filter.Page
	limit := filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var requests []model.TransferRequest
	err := query.
		Preload("Student").
		Preload("CurrentHostel").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transfer requests: %w", err)
	}
	return requests, total, nil
}

// Review records a warden's decision on a pending request and notifies the
// student.
func (s *transferService) Review(ctx context.Context, id, reviewerID uuid.UUID, dto ReviewTransferDTO) (*model.TransferRequest, error) {
	var t model.TransferRequest
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("transfer request not found")
		}
		return nil, fmt.Errorf("failed to load transfer request: %w", err)
	}

	if t.Status != model.TransferStatusPending {
		return nil, apperr.InvalidStatef("transfer request is already %s", t.Status)
	}

	authorized, err := s.hostels.IsActorAuthorized(ctx, reviewerID, model.RoleWarden, t.CurrentHostelID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, apperr.Forbiddenf("warden has no authority over this hostel")
	}

	now := timeNow()
	switch dto.Action {
	case ActApprove:
		t.Status = model.TransferStatusApproved
	case ActReject:
		if dto.Comments == "" {
			return nil, apperr.Validationf("comments are required when rejecting")
		}
		t.Status = model.TransferStatusRejected
	default:
		return nil, apperr.Validationf("invalid action %q", dto.Action)
	}
	t.ReviewedBy = &reviewerID
	t.ReviewComments = dto.Comments
	t.ReviewedAt = &now

	if err := s.db.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to update transfer request: %w", err)
	}

	s.audit.Record(ctx, &reviewerID, model.ActionReviewTransfer, t.RequestNo, t.RequestType, map[string]interface{}{
		"status": t.Status,
	})
	s.notifier.Notify(t.StudentID, model.NotificationKindRequest, NotificationPayload{
		Title:     "Transfer Request Reviewed",
		Message:   fmt.Sprintf("Your %s request has been %s", t.RequestType, t.Status),
		RelatedID: &t.ID,
	})
	return &t, nil
}
