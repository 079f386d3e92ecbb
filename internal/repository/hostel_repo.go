package repository

import (
	"context"
	"errors"
	"fmt"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HostelRepository is the hostel inventory plus the authorization lookup the
// workflow engine consumes: staff roles are scoped to the hostel they are
// assigned to, dean and admin are hostel-global.
type HostelRepository interface {
	Create(ctx context.Context, h *model.Hostel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Hostel, error)
	GetByCode(ctx context.Context, code string) (*model.Hostel, error)
	List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Hostel, int64, error)
	Update(ctx context.Context, h *model.Hostel) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	AssignWarden(ctx context.Context, hostelID, wardenID uuid.UUID) error
	AssignCaretaker(ctx context.Context, hostelID, caretakerID uuid.UUID) error
	FindByWarden(ctx context.Context, wardenID uuid.UUID) (*model.Hostel, error)
	FindByCaretaker(ctx context.Context, caretakerID uuid.UUID) (*model.Hostel, error)
	IsActorAuthorized(ctx context.Context, actorID uuid.UUID, role model.Role, hostelID uuid.UUID) (bool, error)
}

type hostelRepository struct {
	db *gorm.DB
}

func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{db: db}
}

func (r *hostelRepository) Create(ctx context.Context, h *model.Hostel) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("failed to create hostel: %w", err)
	}
	return nil
}

func (r *hostelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Hostel, error) {
	var h model.Hostel
	err := r.db.WithContext(ctx).
		Preload("Warden").
		Preload("Caretakers").
		First(&h, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("hostel not found")
		}
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}
	return &h, nil
}

func (r *hostelRepository) GetByCode(ctx context.Context, code string) (*model.Hostel, error) {
	var h model.Hostel
	err := r.db.WithContext(ctx).First(&h, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("hostel not found")
		}
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}
	return &h, nil
}

func (r *hostelRepository) List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Hostel, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Hostel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count hostels: %w", err)
	}

	var hostels []model.Hostel
	err := query.
		Preload("Warden").
		Order("code ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&hostels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch hostels: %w", err)
	}
	return hostels, total, nil
}

func (r *hostelRepository) Update(ctx context.Context, h *model.Hostel) error {
	if err := r.db.WithContext(ctx).Save(h).Error; err != nil {
		return fmt.Errorf("failed to update hostel: %w", err)
	}
	return nil
}

func (r *hostelRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Hostel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate hostel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("hostel not found")
	}
	return nil
}

func (r *hostelRepository) AssignWarden(ctx context.Context, hostelID, wardenID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Hostel{}).
		Where("id = ?", hostelID).
		Update("warden_id", wardenID)
	if res.Error != nil {
		return fmt.Errorf("failed to assign warden: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("hostel not found")
	}
	return nil
}

func (r *hostelRepository) AssignCaretaker(ctx context.Context, hostelID, caretakerID uuid.UUID) error {
	h := model.Hostel{ID: hostelID}
	err := r.db.WithContext(ctx).Model(&h).
		Association("Caretakers").
		Append(&model.User{ID: caretakerID})
	if err != nil {
		return fmt.Errorf("failed to assign caretaker: %w", err)
	}
	return nil
}

func (r *hostelRepository) FindByWarden(ctx context.Context, wardenID uuid.UUID) (*model.Hostel, error) {
	var h model.Hostel
	err := r.db.WithContext(ctx).First(&h, "warden_id = ?", wardenID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("no hostel assigned")
		}
		return nil, fmt.Errorf("failed to find hostel by warden: %w", err)
	}
	return &h, nil
}

func (r *hostelRepository) FindByCaretaker(ctx context.Context, caretakerID uuid.UUID) (*model.Hostel, error) {
	var h model.Hostel
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN hostel_caretakers hc ON hc.hostel_id = hostels.id").
		Where("hc.user_id = ?", caretakerID).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("no hostel assigned")
		}
		return nil, fmt.Errorf("failed to find hostel by caretaker: %w", err)
	}
	return &h, nil
}

// IsActorAuthorized answers the engine's authority question for one hostel.
func (r *hostelRepository) IsActorAuthorized(ctx context.Context, actorID uuid.UUID, role model.Role, hostelID uuid.UUID) (bool, error) {
	switch role {
	case model.RoleWarden:
		var count int64
		err := r.db.WithContext(ctx).Model(&model.Hostel{}).
			Where("id = ? AND warden_id = ?", hostelID, actorID).
			Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("failed to check warden assignment: %w", err)
		}
		return count > 0, nil
	case model.RoleCaretaker:
		var count int64
		err := r.db.WithContext(ctx).Table("hostel_caretakers").
			Where("hostel_id = ? AND user_id = ?", hostelID, actorID).
			Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("failed to check caretaker assignment: %w", err)
		}
		return count > 0, nil
	case model.RoleDean, model.RoleAdmin:
		return true, nil
	case model.RoleStudent:
		return false, nil
	default:
		return false, nil
	}
}
