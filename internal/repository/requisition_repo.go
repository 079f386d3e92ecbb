package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequisitionFilter narrows List queries.
type RequisitionFilter struct {
	HostelID *uuid.UUID
	Status   string
	Page     int
	Limit    int
}

// RequisitionRepository is the persistence boundary of the workflow engine.
// ApplyTransition is the only mutation path after creation: it writes the
// updated document guarded by the version it was read at and inserts the new
// history entry (and optional attachment) in the same transaction.
type RequisitionRepository interface {
	Create(ctx context.Context, r *model.Requisition) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Requisition, error)
	GetByNo(ctx context.Context, requisitionNo string) (*model.Requisition, error)
	List(ctx context.Context, filter RequisitionFilter) ([]model.Requisition, int64, error)
	ApplyTransition(ctx context.Context, r *model.Requisition, entry *model.RequisitionApproval, attachment *model.RequisitionAttachment) error
}

type requisitionRepository struct {
	db *gorm.DB
}

func NewRequisitionRepository(db *gorm.DB) RequisitionRepository {
	return &requisitionRepository{db: db}
}

func (r *requisitionRepository) Create(ctx context.Context, req *model.Requisition) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create requisition: %w", err)
	}
	return nil
}

func (r *requisitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Requisition, error) {
	var req model.Requisition
	err := r.db.WithContext(ctx).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Attachments").
		First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("requisition not found")
		}
		return nil, fmt.Errorf("failed to load requisition: %w", err)
	}
	return &req, nil
}

func (r *requisitionRepository) GetByNo(ctx context.Context, requisitionNo string) (*model.Requisition, error) {
	var req model.Requisition
	err := r.db.WithContext(ctx).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Attachments").
		First(&req, "requisition_no = ?", requisitionNo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("requisition not found")
		}
		return nil, fmt.Errorf("failed to load requisition: %w", err)
	}
	return &req, nil
}

func (r *requisitionRepository) List(ctx context.Context, filter RequisitionFilter) ([]model.Requisition, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Requisition{})
	if filter.HostelID != nil {
		query = query.Where("hostel_id = ?", *filter.HostelID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requisitions: %w", err)
	}

	page := filter.Page
	limit := filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var reqs []model.Requisition
	err := query.
		Preload("Requester").
		Preload("Hostel").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requisitions: %w", err)
	}
	return reqs, total, nil
}

// ApplyTransition performs the compare-and-swap write. The WHERE clause on
// version guarantees that of two concurrent transitions read from the same
// snapshot only one lands; the loser gets a Conflict. On success req.Version
// reflects the stored value.
func (r *requisitionRepository) ApplyTransition(ctx context.Context, req *model.Requisition, entry *model.RequisitionApproval, attachment *model.RequisitionAttachment) error {
	readVersion := req.Version
	now := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Requisition{}).
			Where("id = ? AND version = ?", req.ID, readVersion).
			Updates(map[string]interface{}{
				"status":             req.Status,
				"actual_amount":      req.ActualAmount,
				"approved_by_warden": req.ApprovedByWarden,
				"approved_by_dean":   req.ApprovedByDean,
				"processed_by_admin": req.ProcessedByAdmin,
				"completed_at":       req.CompletedAt,
				"updated_at":         now,
				"version":            readVersion + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update requisition: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflictf("requisition was modified concurrently")
		}

		entry.RequisitionID = req.ID
		if createErr := tx.Create(entry).Error; createErr != nil {
			return fmt.Errorf("failed to append approval history: %w", createErr)
		}

		if attachment != nil {
			attachment.RequisitionID = req.ID
			if createErr := tx.Create(attachment).Error; createErr != nil {
				return fmt.Errorf("failed to store attachment: %w", createErr)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	req.Version = readVersion + 1
	req.UpdatedAt = now
	req.Approvals = append(req.Approvals, *entry)
	if attachment != nil {
		req.Attachments = append(req.Attachments, *attachment)
	}
	return nil
}
