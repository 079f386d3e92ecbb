package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/pkg/ids"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreatePaymentDTO struct {
	StudentID    uuid.UUID       `json:"student_id" binding:"required"`
	HostelID     *uuid.UUID      `json:"hostel_id"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	PaymentType  string          `json:"payment_type" binding:"required,oneof=hostel_fee mess_fee security_deposit fine other"`
	Description  string          `json:"description"`
	Semester     string          `json:"semester"`
	AcademicYear string          `json:"academic_year"`
	DueDate      *time.Time      `json:"due_date"`
}

type RecordPaymentDTO struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=upi card netbanking wallet cash"`
}

// PaymentService manages fee dues. A payment is created pending by an admin
// and marked completed once money is received; the gateway itself is an
// external collaborator.
type PaymentService interface {
	CreateDue(ctx context.Context, dto CreatePaymentDTO) (*model.Payment, error)
	MarkCompleted(ctx context.Context, paymentID uuid.UUID, dto RecordPaymentDTO) (*model.Payment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, status string, page, limit int) ([]model.Payment, int64, error)
}

type paymentService struct {
	db       *gorm.DB
	audit    AuditService
	notifier Notifier
	log      *zap.Logger
}

func NewPaymentService(db *gorm.DB, audit AuditService, notifier Notifier, log *zap.Logger) PaymentService {
	return &paymentService{db: db, audit: audit, notifier: notifier, log: log}
}

func (s *paymentService) CreateDue(ctx context.Context, dto CreatePaymentDTO) (*model.Payment, error) {
	if !dto.Amount.IsPositive() {
		return nil, apperr.Validationf("amount must be positive")
	}

	var student model.User
	if err := s.db.WithContext(ctx).First(&student, "id = ?", dto.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("student not found")
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if student.Role != model.RoleStudent {
		return nil, apperr.Validationf("user %s is not a student", student.Email)
	}

	p := &model.Payment{
		PaymentNo:    ids.New("PAY"),
		StudentID:    dto.StudentID,
		HostelID:     dto.HostelID,
		Amount:       dto.Amount,
		PaymentType:  dto.PaymentType,
		Status:       model.PaymentStatusPending,
		Description:  dto.Description,
		Semester:     dto.Semester,
		AcademicYear: dto.AcademicYear,
		DueDate:      dto.DueDate,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.audit.Record(ctx, nil, model.ActionCreatePayment, p.PaymentNo, p.PaymentType, map[string]interface{}{
		"amount":     p.Amount.String(),
		"student_id": p.StudentID.String(),
	})
	s.notifier.Notify(p.StudentID, model.NotificationKindPayment, NotificationPayload{
		Title:     "Payment Due",
		Message:   fmt.Sprintf("Payment of %s for %s is due", p.Amount.StringFixed(2), p.PaymentType),
		RelatedID: &p.ID,
	})
	return p, nil
}

func (s *paymentService) MarkCompleted(ctx context.Context, paymentID uuid.UUID, dto RecordPaymentDTO) (*model.Payment, error) {
	var p model.Payment
	if err := s.db.WithContext(ctx).First(&p, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("payment not found")
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	if p.Status != model.PaymentStatusPending && p.Status != model.PaymentStatusProcessing {
		return nil, apperr.InvalidStatef("payment is already %s", p.Status)
	}

	now := timeNow()
	p.Status = model.PaymentStatusCompleted
	p.PaymentMethod = dto.PaymentMethod
	p.PaidAt = &now
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	s.audit.Record(ctx, nil, model.ActionRecordPayment, p.PaymentNo, p.PaymentType, map[string]interface{}{
		"amount": p.Amount.String(),
	})
	s.notifier.Notify(p.StudentID, model.NotificationKindPayment, NotificationPayload{
		Title:     "Payment Successful",
		Message:   fmt.Sprintf("Your payment of %s has been processed successfully", p.Amount.StringFixed(2)),
		RelatedID: &p.ID,
	})
	return &p, nil
}

func (s *paymentService) ListByStudent(ctx context.Context, studentID uuid.UUID, status string, page, limit int) ([]model.Payment, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Payment{}).Where("student_id = ?", studentID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var payments []model.Payment
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return payments, total, nil
}
