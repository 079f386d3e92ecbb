package service

import (
	"context"
	"errors"
	"fmt"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- DTOs ---

type CreateRoomDTO struct {
	RoomNumber  string          `json:"room_number" binding:"required"`
	Floor       int             `json:"floor"`
	Capacity    int             `json:"capacity" binding:"required,min=1"`
	RoomType    string          `json:"room_type" binding:"omitempty,oneof=single double triple quad"`
	Facilities  []string        `json:"facilities"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
}

type UpdateRoomDTO struct {
	Floor       *int             `json:"floor"`
	Capacity    *int             `json:"capacity"`
	RoomType    *string          `json:"room_type"`
	Facilities  []string         `json:"facilities"`
	Status      *string          `json:"status"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent"`
}

// RoomService manages rooms within a hostel, including allotment. Allot and
// Vacate run in a transaction so the room and hostel occupancy counters stay
// consistent under concurrent calls.
type RoomService interface {
	Create(ctx context.Context, hostelID uuid.UUID, dto CreateRoomDTO) (*model.Room, error)
	ListByHostel(ctx context.Context, hostelID uuid.UUID, status string) ([]model.Room, error)
	Update(ctx context.Context, roomID uuid.UUID, dto UpdateRoomDTO) (*model.Room, error)
	Allot(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error)
	Vacate(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error)
}

type roomService struct {
	db    *gorm.DB
	txm   repository.TransactionManager
	audit AuditService
	log   *zap.Logger
}

func NewRoomService(db *gorm.DB, txm repository.TransactionManager, audit AuditService, log *zap.Logger) RoomService {
	return &roomService{db: db, txm: txm, audit: audit, log: log}
}

func (s *roomService) Create(ctx context.Context, hostelID uuid.UUID, dto CreateRoomDTO) (*model.Room, error) {
	var hostel model.Hostel
	if err := s.db.WithContext(ctx).First(&hostel, "id = ?", hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("hostel not found")
		}
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}

	var count int64
	s.db.WithContext(ctx).Model(&model.Room{}).
		Where("hostel_id = ? AND room_number = ?", hostelID, dto.RoomNumber).
		Count(&count)
	if count > 0 {
		return nil, apperr.Validationf("room %s already exists in hostel %s", dto.RoomNumber, hostel.Code)
	}

	room := &model.Room{
		RoomNumber:  dto.RoomNumber,
		HostelID:    hostelID,
		Floor:       dto.Floor,
		Capacity:    dto.Capacity,
		RoomType:    dto.RoomType,
		Facilities:  dto.Facilities,
		Status:      model.RoomStatusAvailable,
		MonthlyRent: dto.MonthlyRent,
	}
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.audit.Record(ctx, nil, model.ActionCreateRoom, room.ID.String(), room.RoomNumber, map[string]interface{}{
		"hostel": hostel.Code,
	})
	return room, nil
}

func (s *roomService) ListByHostel(ctx context.Context, hostelID uuid.UUID, status string) ([]model.Room, error) {
	query := s.db.WithContext(ctx).Where("hostel_id = ?", hostelID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var rooms []model.Room
	if err := query.Preload("Occupants").Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) Update(ctx context.Context, roomID uuid.UUID, dto UpdateRoomDTO) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("room not found")
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}

	if dto.Floor != nil {
		room.Floor = *dto.Floor
	}
	if dto.Capacity != nil {
		room.Capacity = *dto.Capacity
	}
	if dto.RoomType != nil {
		room.RoomType = *dto.RoomType
	}
	if dto.Facilities != nil {
		room.Facilities = dto.Facilities
	}
	if dto.Status != nil {
		room.Status = *dto.Status
	}
	if dto.MonthlyRent != nil {
		room.MonthlyRent = *dto.MonthlyRent
	}
	if err := s.db.WithContext(ctx).Save(&room).Error; err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return &room, nil
}

// Allot places a student into a room, locking the row to serialize concurrent
// allotments against the same room.
func (s *roomService) Allot(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		tx := repository.GetDB(txCtx, s.db)

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("room not found")
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		if room.Status == model.RoomStatusMaintenance {
			return apperr.InvalidStatef("room %s is under maintenance", room.RoomNumber)
		}
		if room.CurrentOccupancy >= room.Capacity {
			return apperr.InvalidStatef("room %s is full", room.RoomNumber)
		}

		var student model.User
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("student not found")
			}
			return fmt.Errorf("failed to load student: %w", err)
		}
		if student.Role != model.RoleStudent {
			return apperr.Validationf("user %s is not a student", student.Email)
		}

		if err := tx.Model(&room).Association("Occupants").Append(&student); err != nil {
			return fmt.Errorf("failed to add occupant: %w", err)
		}

		room.CurrentOccupancy++
		if room.CurrentOccupancy >= room.Capacity {
			room.Status = model.RoomStatusOccupied
		}
		if err := tx.Model(&model.Room{}).Where("id = ?", room.ID).
			Updates(map[string]interface{}{
				"current_occupancy": room.CurrentOccupancy,
				"status":            room.Status,
			}).Error; err != nil {
			return fmt.Errorf("failed to update room occupancy: %w", err)
		}

		if err := tx.Model(&model.Hostel{}).Where("id = ?", room.HostelID).
			Update("occupied_capacity", gorm.Expr("occupied_capacity + 1")).Error; err != nil {
			return fmt.Errorf("failed to update hostel occupancy: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, nil, model.ActionAllotRoom, room.ID.String(), room.RoomNumber, map[string]interface{}{
		"student_id": studentID.String(),
	})
	return &room, nil
}

// Vacate removes a student from a room, reversing the occupancy counters.
func (s *roomService) Vacate(ctx context.Context, roomID, studentID uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		tx := repository.GetDB(txCtx, s.db)

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("room not found")
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		if room.CurrentOccupancy == 0 {
			return apperr.InvalidStatef("room %s has no occupants", room.RoomNumber)
		}

		if err := tx.Model(&room).Association("Occupants").
			Delete(&model.User{ID: studentID}); err != nil {
			return fmt.Errorf("failed to remove occupant: %w", err)
		}

		room.CurrentOccupancy--
		if room.CurrentOccupancy < room.Capacity && room.Status == model.RoomStatusOccupied {
			room.Status = model.RoomStatusAvailable
		}
		if err := tx.Model(&model.Room{}).Where("id = ?", room.ID).
			Updates(map[string]interface{}{
				"current_occupancy": room.CurrentOccupancy,
				"status":            room.Status,
			}).Error; err != nil {
			return fmt.Errorf("failed to update room occupancy: %w", err)
		}

		if err := tx.Model(&model.Hostel{}).Where("id = ?", room.HostelID).
			Update("occupied_capacity", gorm.Expr("occupied_capacity - 1")).Error; err != nil {
			return fmt.Errorf("failed to update hostel occupancy: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, nil, model.ActionVacateRoom, room.ID.String(), room.RoomNumber, map[string]interface{}{
		"student_id": studentID.String(),
	})
	return &room, nil
}
