package service

import (
	"context"
	"fmt"
	"time"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"
	"hosteladmin/pkg/ids"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Workflow action values accepted from callers.
const (
	ActApprove  = "approve"
	ActReject   = "reject"
	ActReturn   = "return"
	ActComplete = "complete"
)

// maxTransitionAttempts bounds the retry-on-conflict loop around the
// compare-and-swap write. A retry re-reads the document, so a concurrent
// winner is observed and the precondition re-checked against the new state.
const maxTransitionAttempts = 3

// --- DTOs ---

type CreateRequisitionDTO struct {
	Title           string          `json:"title" binding:"required,min=5,max=100"`
	Description     string          `json:"description" binding:"required,min=10,max=1000"`
	Category        string          `json:"category" binding:"required"`
	Urgency         string          `json:"urgency"`
	EstimatedAmount decimal.Decimal `json:"estimated_amount" binding:"required"`
}

type WardenActionDTO struct {
	Action   string `json:"action" binding:"required,oneof=approve reject return"`
	Comments string `json:"comments"`
}

type DeanActionDTO struct {
	Action           string           `json:"action" binding:"required,oneof=approve reject"`
	Comments         string           `json:"comments"`
	BudgetAllocation *decimal.Decimal `json:"budget_allocation"`
}

type AdminActionDTO struct {
	Action       string           `json:"action" binding:"required,oneof=complete approve reject"`
	Comments     string           `json:"comments"`
	ActualAmount *decimal.Decimal `json:"actual_amount"`
	ProofURL     string           `json:"proof_url"`
}

// --- Interface ---

// RequisitionService is the requisition workflow engine. It owns the
// caretaker -> warden -> dean -> admin approval chain: every transition
// verifies the actor's authority over the requisition's hostel, appends
// exactly one approval-history entry, and notifies the requester after the
// state change is committed.
type RequisitionService interface {
	Create(ctx context.Context, caretakerID uuid.UUID, dto CreateRequisitionDTO) (*model.Requisition, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Requisition, error)
	List(ctx context.Context, filter repository.RequisitionFilter) ([]model.Requisition, int64, error)
	ListForCaretaker(ctx context.Context, caretakerID uuid.UUID, status string, page, limit int) ([]model.Requisition, int64, error)
	ListForWarden(ctx context.Context, wardenID uuid.UUID, status string, page, limit int) ([]model.Requisition, int64, error)
	WardenAct(ctx context.Context, id, actorID uuid.UUID, dto WardenActionDTO) (*model.Requisition, error)
	DeanAct(ctx context.Context, id, actorID uuid.UUID, dto DeanActionDTO) (*model.Requisition, error)
	AdminAct(ctx context.Context, id, actorID uuid.UUID, dto AdminActionDTO) (*model.Requisition, error)
	Resubmit(ctx context.Context, id, actorID uuid.UUID, comments string) (*model.Requisition, error)
	Cancel(ctx context.Context, id, actorID uuid.UUID, comments string) (*model.Requisition, error)
}

type requisitionService struct {
	repo     repository.RequisitionRepository
	hostels  repository.HostelRepository
	audit    AuditService
	notifier Notifier
	log      *zap.Logger
}

func NewRequisitionService(
	repo repository.RequisitionRepository,
	hostels repository.HostelRepository,
	audit AuditService,
	notifier Notifier,
	log *zap.Logger,
) RequisitionService {
	return &requisitionService{
		repo:     repo,
		hostels:  hostels,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

// --- Creation & queries ---

// Create files a new requisition for the caretaker's assigned hostel. The
// caretaker stage is satisfied by creation itself, so the initial status is
// pending-warden.
func (s *requisitionService) Create(ctx context.Context, caretakerID uuid.UUID, dto CreateRequisitionDTO) (*model.Requisition, error) {
	if !model.ValidReqCategory(dto.Category) {
		return nil, apperr.Validationf("invalid category %q", dto.Category)
	}
	urgency := dto.Urgency
	if urgency == "" {
		urgency = model.ReqUrgencyMedium
	}
	if !model.ValidReqUrgency(urgency) {
		return nil, apperr.Validationf("invalid urgency %q", urgency)
	}
	if dto.EstimatedAmount.IsNegative() {
		return nil, apperr.Validationf("estimated amount must not be negative")
	}

	hostel, err := s.hostels.FindByCaretaker(ctx, caretakerID)
	if err != nil {
		return nil, err
	}

	req := &model.Requisition{
		RequisitionNo:   ids.New("REQ"),
		Title:           dto.Title,
		Description:     dto.Description,
		Category:        dto.Category,
		Urgency:         urgency,
		EstimatedAmount: dto.EstimatedAmount,
		Status:          model.ReqStatusPendingWarden,
		HostelID:        hostel.ID,
		RequestedBy:     caretakerID,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &caretakerID, model.ActionCreateRequisition, req.RequisitionNo, req.Title, map[string]interface{}{
		"hostel_id":        hostel.ID.String(),
		"category":         req.Category,
		"estimated_amount": req.EstimatedAmount.String(),
	})
	s.log.Info("requisition created",
		zap.String("requisition_no", req.RequisitionNo),
		zap.String("hostel", hostel.Code),
		zap.String("requested_by", caretakerID.String()))

	return req, nil
}

func (s *requisitionService) Get(ctx context.Context, id uuid.UUID) (*model.Requisition, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *requisitionService) List(ctx context.Context, filter repository.RequisitionFilter) ([]model.Requisition, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *requisitionService) ListForCaretaker(ctx context.Context, caretakerID uuid.UUID, status string, page, limit int) ([]model.Requisition, int64, error) {
	hostel, err := s.hostels.FindByCaretaker(ctx, caretakerID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, repository.RequisitionFilter{
		HostelID: &hostel.ID,
		Status:   status,
		Page:     page,
		Limit:    limit,
	})
}

func (s *requisitionService) ListForWarden(ctx context.Context, wardenID uuid.UUID, status string, page, limit int) ([]model.Requisition, int64, error) {
	hostel, err := s.hostels.FindByWarden(ctx, wardenID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, repository.RequisitionFilter{
		HostelID: &hostel.ID,
		Status:   status,
		Page:     page,
		Limit:    limit,
	})
}

// --- Transitions ---

// WardenAct handles the warden stage: approve advances to the dean, reject is
// terminal, return hands the requisition back to the caretaker.
func (s *requisitionService) WardenAct(ctx context.Context, id, actorID uuid.UUID, dto WardenActionDTO) (*model.Requisition, error) {
	if dto.Action == ActReject && dto.Comments == "" {
		return nil, apperr.Validationf("comments are required when rejecting")
	}

	return s.transition(ctx, id, actorID, model.RoleWarden, func(r *model.Requisition) (*step, error) {
		if r.Status != model.ReqStatusPendingWarden {
			return nil, apperr.InvalidStatef("requisition is %s, expected %s", r.Status, model.ReqStatusPendingWarden)
		}

		st := &step{}
		switch dto.Action {
		case ActApprove:
			r.Status = model.ReqStatusPendingDean
			if r.ApprovedByWarden == nil {
				r.ApprovedByWarden = &actorID
			}
			st.historyAction = model.ReqActionApproved
			st.auditAction = model.ActionApproveRequisition
		case ActReject:
			r.Status = model.ReqStatusRejectedByWarden
			st.historyAction = model.ReqActionRejected
			st.auditAction = model.ActionRejectRequisition
		case ActReturn:
			r.Status = model.ReqStatusReturnedToCaretaker
			st.historyAction = model.ReqActionReturned
			st.auditAction = model.ActionReturnRequisition
		default:
			return nil, apperr.Validationf("invalid action %q", dto.Action)
		}
		st.comments = dto.Comments
		st.message = fallback(dto.Comments, fmt.Sprintf("Requisition %s by warden", st.historyAction))
		return st, nil
	})
}

// DeanAct handles the dean stage: approve always lands on approved-by-dean
// (completion is reserved for the admin), reject is terminal. A budget
// allocation, when given, pre-fills the actual amount the admin will settle.
func (s *requisitionService) DeanAct(ctx context.Context, id, actorID uuid.UUID, dto DeanActionDTO) (*model.Requisition, error) {
	if dto.Action == ActReject && dto.Comments == "" {
		return nil, apperr.Validationf("comments are required when rejecting")
	}

	return s.transition(ctx, id, actorID, model.RoleDean, func(r *model.Requisition) (*step, error) {
		if r.Status != model.ReqStatusPendingDean {
			return nil, apperr.InvalidStatef("requisition is %s, expected %s", r.Status, model.ReqStatusPendingDean)
		}

		st := &step{}
		switch dto.Action {
		case ActApprove:
			r.Status = model.ReqStatusApprovedByDean
			if r.ApprovedByDean == nil {
				r.ApprovedByDean = &actorID
			}
			if dto.BudgetAllocation != nil {
				r.ActualAmount = decimal.NewNullDecimal(*dto.BudgetAllocation)
			}
			st.historyAction = model.ReqActionApproved
			st.auditAction = model.ActionApproveRequisition
		case ActReject:
			r.Status = model.ReqStatusRejectedByDean
			st.historyAction = model.ReqActionRejected
			st.auditAction = model.ActionRejectRequisition
		default:
			return nil, apperr.Validationf("invalid action %q", dto.Action)
		}
		st.comments = dto.Comments
		st.message = fallback(dto.Comments, fmt.Sprintf("Requisition %s by dean", st.historyAction))
		return st, nil
	})
}

// AdminAct settles a dean-approved requisition. Completion records the actual
// amount, stamps completedAt and optionally attaches proof of payment. Any
// other action only appends a history remark without moving the status.
func (s *requisitionService) AdminAct(ctx context.Context, id, actorID uuid.UUID, dto AdminActionDTO) (*model.Requisition, error) {
	if dto.Action == ActComplete && dto.ActualAmount == nil {
		return nil, apperr.Validationf("actual amount is required to complete a requisition")
	}

	return s.transition(ctx, id, actorID, model.RoleAdmin, func(r *model.Requisition) (*step, error) {
		if model.IsTerminalReqStatus(r.Status) {
			return nil, apperr.InvalidStatef("requisition is already %s", r.Status)
		}

		st := &step{}
		switch dto.Action {
		case ActComplete:
			if r.Status != model.ReqStatusApprovedByDean && r.Status != model.ReqStatusPendingAdmin {
				return nil, apperr.InvalidStatef("requisition is %s, expected %s", r.Status, model.ReqStatusApprovedByDean)
			}
			now := timeNow()
			r.Status = model.ReqStatusCompleted
			r.ActualAmount = decimal.NewNullDecimal(*dto.ActualAmount)
			r.CompletedAt = &now
			if r.ProcessedByAdmin == nil {
				r.ProcessedByAdmin = &actorID
			}
			if dto.ProofURL != "" {
				st.attachment = &model.RequisitionAttachment{
					URL:      dto.ProofURL,
					Filename: "payment_proof",
					Type:     model.AttachmentTypeProof,
				}
			}
			st.historyAction = model.ReqActionComplete
			st.auditAction = model.ActionCompleteRequisition
		case ActApprove:
			st.historyAction = model.ReqActionApproved
			st.auditAction = model.ActionApproveRequisition
		case ActReject:
			st.historyAction = model.ReqActionRejected
			st.auditAction = model.ActionRejectRequisition
		default:
			return nil, apperr.Validationf("invalid action %q", dto.Action)
		}
		st.comments = dto.Comments
		st.message = fallback(dto.Comments, fmt.Sprintf("Requisition %s by admin", st.historyAction))
		return st, nil
	})
}

// Resubmit lets the caretaker send a returned requisition back to the warden.
func (s *requisitionService) Resubmit(ctx context.Context, id, actorID uuid.UUID, comments string) (*model.Requisition, error) {
	return s.transition(ctx, id, actorID, model.RoleCaretaker, func(r *model.Requisition) (*step, error) {
		if r.Status != model.ReqStatusReturnedToCaretaker {
			return nil, apperr.InvalidStatef("requisition is %s, expected %s", r.Status, model.ReqStatusReturnedToCaretaker)
		}
		r.Status = model.ReqStatusPendingWarden
		return &step{
			historyAction: model.ReqActionForwarded,
			auditAction:   model.ActionResubmitRequisition,
			comments:      comments,
			message:       fallback(comments, "Requisition resubmitted to warden"),
		}, nil
	})
}

// Cancel withdraws a requisition that has not progressed past the warden.
func (s *requisitionService) Cancel(ctx context.Context, id, actorID uuid.UUID, comments string) (*model.Requisition, error) {
	return s.transition(ctx, id, actorID, model.RoleCaretaker, func(r *model.Requisition) (*step, error) {
		if r.Status != model.ReqStatusPendingWarden && r.Status != model.ReqStatusReturnedToCaretaker {
			return nil, apperr.InvalidStatef("requisition is %s and can no longer be cancelled", r.Status)
		}
		r.Status = model.ReqStatusCancelled
		return &step{
			historyAction: model.ReqActionCancelled,
			auditAction:   model.ActionCancelRequisition,
			comments:      comments,
			message:       fallback(comments, "Requisition cancelled by caretaker"),
		}, nil
	})
}

// --- Engine internals ---

// step describes the outcome a role action computed from the current document:
// the mutated fields live on the document itself, the rest rides here.
type step struct {
	historyAction string
	auditAction   string
	comments      string
	message       string
	attachment    *model.RequisitionAttachment
}

// transition runs one read-check-mutate-write cycle, retrying a bounded number
// of times when the compare-and-swap loses to a concurrent writer. Each retry
// re-reads the document, so the precondition inside fn is evaluated against
// the winner's resulting state.
func (s *requisitionService) transition(ctx context.Context, id, actorID uuid.UUID, role model.Role, fn func(r *model.Requisition) (*step, error)) (*model.Requisition, error) {
	var lastErr error
	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		r, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		authorized, err := s.hostels.IsActorAuthorized(ctx, actorID, role, r.HostelID)
		if err != nil {
			return nil, err
		}
		if !authorized {
			return nil, apperr.Forbiddenf("%s has no authority over this hostel", role)
		}

		st, err := fn(r)
		if err != nil {
			return nil, err
		}

		entry := &model.RequisitionApproval{
			Seq:        len(r.Approvals) + 1,
			ApprovedBy: actorID,
			Role:       role,
			Action:     st.historyAction,
			Comments:   st.comments,
		}

		err = s.repo.ApplyTransition(ctx, r, entry, st.attachment)
		if apperr.IsConflict(err) {
			lastErr = err
			s.log.Warn("requisition transition lost version race, retrying",
				zap.String("requisition_no", r.RequisitionNo),
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		s.audit.Record(ctx, &actorID, st.auditAction, r.RequisitionNo, r.Title, map[string]interface{}{
			"status": r.Status,
			"role":   role.String(),
			"action": st.historyAction,
		})
		s.notifier.Notify(r.RequestedBy, model.NotificationKindRequisition, NotificationPayload{
			Title:     "Requisition Update",
			Message:   st.message,
			RelatedID: &r.ID,
		})
		return r, nil
	}
	return nil, lastErr
}

// timeNow is a seam for tests that assert completion timestamps.
var timeNow = time.Now

func fallback(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
