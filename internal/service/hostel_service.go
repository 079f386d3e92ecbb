package service

import (
	"context"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type CreateHostelDTO struct {
	Name          string   `json:"name" binding:"required"`
	Code          string   `json:"code" binding:"required"`
	Type          string   `json:"type" binding:"required,oneof=boys girls mixed"`
	TotalRooms    int      `json:"total_rooms" binding:"required,min=1"`
	TotalCapacity int      `json:"total_capacity" binding:"required,min=1"`
	Facilities    []string `json:"facilities"`
	Address       string   `json:"address"`
	ContactNumber string   `json:"contact_number"`
}

type UpdateHostelDTO struct {
	Name          *string  `json:"name"`
	TotalRooms    *int     `json:"total_rooms"`
	TotalCapacity *int     `json:"total_capacity"`
	Facilities    []string `json:"facilities"`
	Address       *string  `json:"address"`
	ContactNumber *string  `json:"contact_number"`
	IsActive      *bool    `json:"is_active"`
}

// HostelService manages the hostel inventory and its staff assignments.
type HostelService interface {
	Create(ctx context.Context, dto CreateHostelDTO) (*model.Hostel, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Hostel, error)
	List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Hostel, int64, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateHostelDTO) (*model.Hostel, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	AssignWarden(ctx context.Context, hostelID, wardenID uuid.UUID) error
	AssignCaretaker(ctx context.Context, hostelID, caretakerID uuid.UUID) error
}

type hostelService struct {
	repo  repository.HostelRepository
	users repository.UserRepository
	audit AuditService
	log   *zap.Logger
}

func NewHostelService(repo repository.HostelRepository, users repository.UserRepository, audit AuditService, log *zap.Logger) HostelService {
	return &hostelService{repo: repo, users: users, audit: audit, log: log}
}

func (s *hostelService) Create(ctx context.Context, dto CreateHostelDTO) (*model.Hostel, error) {
	if existing, err := s.repo.GetByCode(ctx, dto.Code); err == nil && existing != nil {
		return nil, apperr.Validationf("hostel code %q already exists", dto.Code)
	}

	h := &model.Hostel{
		Name:          dto.Name,
		Code:          dto.Code,
		Type:          dto.Type,
		TotalRooms:    dto.TotalRooms,
		TotalCapacity: dto.TotalCapacity,
		Facilities:    dto.Facilities,
		Address:       dto.Address,
		ContactNumber: dto.ContactNumber,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, nil, model.ActionCreateHostel, h.Code, h.Name, nil)
	s.log.Info("hostel created", zap.String("code", h.Code))
	return h, nil
}

func (s *hostelService) Get(ctx context.Context, id uuid.UUID) (*model.Hostel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *hostelService) List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Hostel, int64, error) {
	return s.repo.List(ctx, page, limit, activeOnly)
}

func (s *hostelService) Update(ctx context.Context, id uuid.UUID, dto UpdateHostelDTO) (*model.Hostel, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		h.Name = *dto.Name
	}
	if dto.TotalRooms != nil {
		h.TotalRooms = *dto.TotalRooms
	}
	if dto.TotalCapacity != nil {
		h.TotalCapacity = *dto.TotalCapacity
	}
	if dto.Facilities != nil {
		h.Facilities = dto.Facilities
	}
	if dto.Address != nil {
		h.Address = *dto.Address
	}
	if dto.ContactNumber != nil {
		h.ContactNumber = *dto.ContactNumber
	}
	if dto.IsActive != nil {
		h.IsActive = *dto.IsActive
	}
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, nil, model.ActionUpdateHostel, h.Code, h.Name, nil)
	return h, nil
}

func (s *hostelService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, nil, model.ActionDeleteHostel, id.String(), "", nil)
	return nil
}

func (s *hostelService) AssignWarden(ctx context.Context, hostelID, wardenID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, wardenID)
	if err != nil {
		return err
	}
	if user.Role != model.RoleWarden {
		return apperr.Validationf("user %s is not a warden", user.Email)
	}
	return s.repo.AssignWarden(ctx, hostelID, wardenID)
}

func (s *hostelService) AssignCaretaker(ctx context.Context, hostelID, caretakerID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, caretakerID)
	if err != nil {
		return err
	}
	if user.Role != model.RoleCaretaker {
		return apperr.Validationf("user %s is not a caretaker", user.Email)
	}
	if _, err := s.repo.GetByID(ctx, hostelID); err != nil {
		return err
	}
	return s.repo.AssignCaretaker(ctx, hostelID, caretakerID)
}
