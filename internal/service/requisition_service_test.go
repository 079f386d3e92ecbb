package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- fakes ---

type fakeRequisitionRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Requisition
}

func newFakeRequisitionRepo() *fakeRequisitionRepo {
	return &fakeRequisitionRepo{byID: make(map[uuid.UUID]*model.Requisition)}
}

func copyRequisition(r *model.Requisition) *model.Requisition {
	c := *r
	c.Approvals = append([]model.RequisitionApproval(nil), r.Approvals...)
	c.Attachments = append([]model.RequisitionAttachment(nil), r.Attachments...)
	return &c
}

func (f *fakeRequisitionRepo) Create(_ context.Context, r *model.Requisition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.byID[r.ID] = copyRequisition(r)
	return nil
}

func (f *fakeRequisitionRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Requisition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFoundf("requisition not found")
	}
	return copyRequisition(r), nil
}

func (f *fakeRequisitionRepo) GetByNo(_ context.Context, no string) (*model.Requisition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.RequisitionNo == no {
			return copyRequisition(r), nil
		}
	}
	return nil, apperr.NotFoundf("requisition not found")
}

func (f *fakeRequisitionRepo) List(_ context.Context, filter repository.RequisitionFilter) ([]model.Requisition, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Requisition
	for _, r := range f.byID {
		if filter.HostelID != nil && r.HostelID != *filter.HostelID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, *copyRequisition(r))
	}
	return out, int64(len(out)), nil
}

// ApplyTransition mirrors the production compare-and-swap: the write lands only
// if the stored version still equals the version the caller read.
func (f *fakeRequisitionRepo) ApplyTransition(_ context.Context, req *model.Requisition, entry *model.RequisitionApproval, attachment *model.RequisitionAttachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[req.ID]
	if !ok {
		return apperr.NotFoundf("requisition not found")
	}
	if stored.Version != req.Version {
		return apperr.Conflictf("requisition was modified concurrently")
	}

	now := time.Now()
	entry.RequisitionID = req.ID
	next := copyRequisition(req)
	next.Version = req.Version + 1
	next.UpdatedAt = now
	next.Approvals = append(next.Approvals, *entry)
	if attachment != nil {
		attachment.RequisitionID = req.ID
		next.Attachments = append(next.Attachments, *attachment)
	}
	f.byID[req.ID] = next

	req.Version++
	req.UpdatedAt = now
	req.Approvals = append(req.Approvals, *entry)
	if attachment != nil {
		req.Attachments = append(req.Attachments, *attachment)
	}
	return nil
}

type fakeHostelRepo struct {
	hostel      *model.Hostel
	wardenID    uuid.UUID
	caretakerID uuid.UUID
}

func (f *fakeHostelRepo) Create(context.Context, *model.Hostel) error { return nil }
func (f *fakeHostelRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Hostel, error) {
	if f.hostel != nil && f.hostel.ID == id {
		return f.hostel, nil
	}
	return nil, apperr.NotFoundf("hostel not found")
}
func (f *fakeHostelRepo) GetByCode(context.Context, string) (*model.Hostel, error) {
	return f.hostel, nil
}
func (f *fakeHostelRepo) List(context.Context, int, int, bool) ([]model.Hostel, int64, error) {
	return nil, 0, nil
}
func (f *fakeHostelRepo) Update(context.Context, *model.Hostel) error          { return nil }
func (f *fakeHostelRepo) Deactivate(context.Context, uuid.UUID) error          { return nil }
func (f *fakeHostelRepo) AssignWarden(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (f *fakeHostelRepo) AssignCaretaker(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (f *fakeHostelRepo) FindByWarden(_ context.Context, wardenID uuid.UUID) (*model.Hostel, error) {
	if wardenID == f.wardenID {
		return f.hostel, nil
	}
	return nil, apperr.NotFoundf("no hostel assigned to warden")
}

func (f *fakeHostelRepo) FindByCaretaker(_ context.Context, caretakerID uuid.UUID) (*model.Hostel, error) {
	if caretakerID == f.caretakerID {
		return f.hostel, nil
	}
	return nil, apperr.NotFoundf("no hostel assigned to caretaker")
}

func (f *fakeHostelRepo) IsActorAuthorized(_ context.Context, actorID uuid.UUID, role model.Role, hostelID uuid.UUID) (bool, error) {
	if hostelID != f.hostel.ID {
		return false, nil
	}
	switch role {
	case model.RoleWarden:
		return actorID == f.wardenID, nil
	case model.RoleCaretaker:
		return actorID == f.caretakerID, nil
	case model.RoleDean, model.RoleAdmin:
		return true, nil
	default:
		return false, nil
	}
}

type notifyCall struct {
	userID  uuid.UUID
	kind    string
	payload NotificationPayload
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeNotifier) Notify(userID uuid.UUID, kind string, payload NotificationPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{userID: userID, kind: kind, payload: payload})
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _ *uuid.UUID, action, _, _ string, _ map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeAudit) List(context.Context, AuditFilter) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}

// --- harness ---

type engineFixture struct {
	svc         RequisitionService
	repo        *fakeRequisitionRepo
	hostels     *fakeHostelRepo
	notifier    *fakeNotifier
	audit       *fakeAudit
	hostelID    uuid.UUID
	caretakerID uuid.UUID
	wardenID    uuid.UUID
	deanID      uuid.UUID
	adminID     uuid.UUID
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	fx := &engineFixture{
		repo:        newFakeRequisitionRepo(),
		notifier:    &fakeNotifier{},
		audit:       &fakeAudit{},
		hostelID:    uuid.New(),
		caretakerID: uuid.New(),
		wardenID:    uuid.New(),
		deanID:      uuid.New(),
		adminID:     uuid.New(),
	}
	fx.hostels = &fakeHostelRepo{
		hostel:      &model.Hostel{ID: fx.hostelID, Name: "North Block", Code: "NB"},
		wardenID:    fx.wardenID,
		caretakerID: fx.caretakerID,
	}
	fx.svc = NewRequisitionService(fx.repo, fx.hostels, fx.audit, fx.notifier, zap.NewNop())
	return fx
}

func (fx *engineFixture) create(t *testing.T) *model.Requisition {
	t.Helper()
	req, err := fx.svc.Create(context.Background(), fx.caretakerID, CreateRequisitionDTO{
		Title:           "Replace water pump",
		Description:     "The main pump in block A failed and needs replacement",
		Category:        model.ReqCategoryRepair,
		Urgency:         model.ReqUrgencyHigh,
		EstimatedAmount: decimal.NewFromInt(12000),
	})
	require.NoError(t, err)
	return req
}

// advance walks a fresh requisition to approved-by-dean.
func (fx *engineFixture) createApproved(t *testing.T) *model.Requisition {
	t.Helper()
	req := fx.create(t)
	_, err := fx.svc.WardenAct(context.Background(), req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	require.NoError(t, err)
	out, err := fx.svc.DeanAct(context.Background(), req.ID, fx.deanID, DeanActionDTO{Action: ActApprove})
	require.NoError(t, err)
	return out
}

// --- creation ---

func TestCreateRequisition(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)

	assert.Equal(t, model.ReqStatusPendingWarden, req.Status)
	assert.Equal(t, fx.hostelID, req.HostelID)
	assert.Equal(t, fx.caretakerID, req.RequestedBy)
	assert.Regexp(t, `^REQ-`, req.RequisitionNo)
	assert.Empty(t, req.Approvals)
	assert.Equal(t, 0, req.Version)
	assert.False(t, req.ActualAmount.Valid)
}

func TestCreateRequisitionDefaultsUrgency(t *testing.T) {
	fx := newEngineFixture(t)
	req, err := fx.svc.Create(context.Background(), fx.caretakerID, CreateRequisitionDTO{
		Title:           "Mess chairs",
		Description:     "Twenty chairs in the mess hall are broken",
		Category:        model.ReqCategoryInventory,
		EstimatedAmount: decimal.NewFromInt(8000),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReqUrgencyMedium, req.Urgency)
}

func TestCreateRequisitionValidation(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, fx.caretakerID, CreateRequisitionDTO{
		Title:           "Bad category",
		Description:     "A requisition with an unknown category",
		Category:        "catering",
		EstimatedAmount: decimal.NewFromInt(100),
	})
	assert.True(t, apperr.IsValidation(err))

	_, err = fx.svc.Create(ctx, fx.caretakerID, CreateRequisitionDTO{
		Title:           "Negative amount",
		Description:     "A requisition with a negative estimate",
		Category:        model.ReqCategoryRepair,
		EstimatedAmount: decimal.NewFromInt(-5),
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateRequisitionUnassignedCaretaker(t *testing.T) {
	fx := newEngineFixture(t)
	_, err := fx.svc.Create(context.Background(), uuid.New(), CreateRequisitionDTO{
		Title:           "Stray request",
		Description:     "Filed by a caretaker with no hostel assignment",
		Category:        model.ReqCategoryOther,
		EstimatedAmount: decimal.NewFromInt(100),
	})
	assert.True(t, apperr.IsNotFound(err))
}

// --- warden stage ---

func TestWardenApprove(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)

	out, err := fx.svc.WardenAct(context.Background(), req.ID, fx.wardenID, WardenActionDTO{
		Action:   ActApprove,
		Comments: "Verified on site",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ReqStatusPendingDean, out.Status)
	require.NotNil(t, out.ApprovedByWarden)
	assert.Equal(t, fx.wardenID, *out.ApprovedByWarden)

	require.Len(t, out.Approvals, 1)
	entry := out.Approvals[0]
	assert.Equal(t, 1, entry.Seq)
	assert.Equal(t, model.RoleWarden, entry.Role)
	assert.Equal(t, model.ReqActionApproved, entry.Action)
	assert.Equal(t, "Verified on site", entry.Comments)
	assert.Equal(t, fx.wardenID, entry.ApprovedBy)

	// The caretaker is told about the decision.
	require.Equal(t, 1, fx.notifier.count())
	assert.Equal(t, fx.caretakerID, fx.notifier.calls[0].userID)
	assert.Equal(t, model.NotificationKindRequisition, fx.notifier.calls[0].kind)
}

func TestWardenRejectRequiresComments(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)

	_, err := fx.svc.WardenAct(context.Background(), req.ID, fx.wardenID, WardenActionDTO{Action: ActReject})
	assert.True(t, apperr.IsValidation(err))

	// Nothing moved.
	stored, err := fx.repo.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReqStatusPendingWarden, stored.Status)
	assert.Empty(t, stored.Approvals)
}

func TestWardenRejectIsTerminal(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	out, err := fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{
		Action:   ActReject,
		Comments: "Not in this quarter's budget",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReqStatusRejectedByWarden, out.Status)
	assert.Nil(t, out.ApprovedByWarden)

	// No further workflow action is accepted.
	_, err = fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	assert.True(t, apperr.IsInvalidState(err))
	_, err = fx.svc.AdminAct(ctx, req.ID, fx.adminID, AdminActionDTO{Action: ActApprove})
	assert.True(t, apperr.IsInvalidState(err))
}

func TestWardenReturnAndResubmit(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	out, err := fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{
		Action:   ActReturn,
		Comments: "Attach two vendor quotes",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReqStatusReturnedToCaretaker, out.Status)

	out, err = fx.svc.Resubmit(ctx, req.ID, fx.caretakerID, "Quotes attached")
	require.NoError(t, err)
	assert.Equal(t, model.ReqStatusPendingWarden, out.Status)

	require.Len(t, out.Approvals, 2)
	assert.Equal(t, model.ReqActionReturned, out.Approvals[0].Action)
	assert.Equal(t, model.ReqActionForwarded, out.Approvals[1].Action)
	assert.Equal(t, 2, out.Approvals[1].Seq)
}

func TestWardenActForbidden(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)

	_, err := fx.svc.WardenAct(context.Background(), req.ID, uuid.New(), WardenActionDTO{Action: ActApprove})
	assert.True(t, apperr.IsForbidden(err))

	stored, getErr := fx.repo.GetByID(context.Background(), req.ID)
	require.NoError(t, getErr)
	assert.Equal(t, model.ReqStatusPendingWarden, stored.Status)
	assert.Empty(t, stored.Approvals)
}

func TestWardenActWrongState(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	_, err := fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	require.NoError(t, err)

	// Second warden pass against a requisition already with the dean.
	_, err = fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	assert.True(t, apperr.IsInvalidState(err))

	stored, getErr := fx.repo.GetByID(ctx, req.ID)
	require.NoError(t, getErr)
	assert.Equal(t, model.ReqStatusPendingDean, stored.Status)
	assert.Len(t, stored.Approvals, 1)
}

// --- dean stage ---

func TestDeanApproveWithBudgetAllocation(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	_, err := fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	require.NoError(t, err)

	budget := decimal.NewFromInt(10500)
	out, err := fx.svc.DeanAct(ctx, req.ID, fx.deanID, DeanActionDTO{
		Action:           ActApprove,
		BudgetAllocation: &budget,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ReqStatusApprovedByDean, out.Status)
	require.NotNil(t, out.ApprovedByDean)
	assert.Equal(t, fx.deanID, *out.ApprovedByDean)
	require.True(t, out.ActualAmount.Valid)
	assert.True(t, out.ActualAmount.Decimal.Equal(budget))
	assert.Len(t, out.Approvals, 2)
}

func TestDeanRejectIsTerminal(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	_, err := fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	require.NoError(t, err)

	out, err := fx.svc.DeanAct(ctx, req.ID, fx.deanID, DeanActionDTO{
		Action:   ActReject,
		Comments: "Exceeds discretionary limit",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReqStatusRejectedByDean, out.Status)

	_, err = fx.svc.AdminAct(ctx, req.ID, fx.adminID, AdminActionDTO{
		Action:       ActComplete,
		ActualAmount: &out.EstimatedAmount,
	})
	assert.True(t, apperr.IsInvalidState(err))
}

func TestDeanActBeforeWarden(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)

	_, err := fx.svc.DeanAct(context.Background(), req.ID, fx.deanID, DeanActionDTO{Action: ActApprove})
	assert.True(t, apperr.IsInvalidState(err))
}

// --- admin stage ---

func TestAdminComplete(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.createApproved(t)

	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	actual := decimal.NewFromInt(11250)
	out, err := fx.svc.AdminAct(context.Background(), req.ID, fx.adminID, AdminActionDTO{
		Action:       ActComplete,
		ActualAmount: &actual,
		ProofURL:     "https://files.example.edu/proofs/req-1.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ReqStatusCompleted, out.Status)
	require.True(t, out.ActualAmount.Valid)
	assert.True(t, out.ActualAmount.Decimal.Equal(actual))
	require.NotNil(t, out.CompletedAt)
	assert.True(t, out.CompletedAt.Equal(fixed))
	require.NotNil(t, out.ProcessedByAdmin)
	assert.Equal(t, fx.adminID, *out.ProcessedByAdmin)

	require.Len(t, out.Approvals, 3)
	assert.Equal(t, model.ReqActionComplete, out.Approvals[2].Action)

	require.Len(t, out.Attachments, 1)
	assert.Equal(t, model.AttachmentTypeProof, out.Attachments[0].Type)
	assert.Equal(t, "https://files.example.edu/proofs/req-1.pdf", out.Attachments[0].URL)
}

func TestAdminCompleteRequiresActualAmount(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.createApproved(t)

	_, err := fx.svc.AdminAct(context.Background(), req.ID, fx.adminID, AdminActionDTO{Action: ActComplete})
	assert.True(t, apperr.IsValidation(err))
}

func TestAdminRemarkKeepsStatus(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.createApproved(t)

	out, err := fx.svc.AdminAct(context.Background(), req.ID, fx.adminID, AdminActionDTO{
		Action:   ActApprove,
		Comments: "Purchase order raised",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ReqStatusApprovedByDean, out.Status)
	assert.Nil(t, out.CompletedAt)
	require.Len(t, out.Approvals, 3)
	assert.Equal(t, model.ReqActionApproved, out.Approvals[2].Action)
	assert.Equal(t, model.RoleAdmin, out.Approvals[2].Role)
}

func TestAdminActOnCompleted(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.createApproved(t)
	ctx := context.Background()

	actual := decimal.NewFromInt(9000)
	_, err := fx.svc.AdminAct(ctx, req.ID, fx.adminID, AdminActionDTO{Action: ActComplete, ActualAmount: &actual})
	require.NoError(t, err)

	_, err = fx.svc.AdminAct(ctx, req.ID, fx.adminID, AdminActionDTO{Action: ActComplete, ActualAmount: &actual})
	assert.True(t, apperr.IsInvalidState(err))
}

// --- cancel ---

func TestCancel(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)

	out, err := fx.svc.Cancel(context.Background(), req.ID, fx.caretakerID, "No longer needed")
	require.NoError(t, err)
	assert.Equal(t, model.ReqStatusCancelled, out.Status)
	require.Len(t, out.Approvals, 1)
	assert.Equal(t, model.ReqActionCancelled, out.Approvals[0].Action)
}

func TestCancelAfterWardenApproval(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	_, err := fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	require.NoError(t, err)

	_, err = fx.svc.Cancel(ctx, req.ID, fx.caretakerID, "")
	assert.True(t, apperr.IsInvalidState(err))
}

// --- cross-cutting invariants ---

func TestTransitionPreservesIdentity(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	created := req.CreatedAt

	out, err := fx.svc.WardenAct(context.Background(), req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
	require.NoError(t, err)

	assert.Equal(t, req.ID, out.ID)
	assert.Equal(t, req.RequisitionNo, out.RequisitionNo)
	assert.Equal(t, fx.hostelID, out.HostelID)
	assert.Equal(t, fx.caretakerID, out.RequestedBy)
	assert.Equal(t, created, out.CreatedAt)
	assert.Equal(t, 1, out.Version)
	assert.False(t, out.UpdatedAt.Before(created))
}

func TestEveryTransitionAppendsExactlyOneEntry(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	steps := []func() (*model.Requisition, error){
		func() (*model.Requisition, error) {
			return fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActReturn, Comments: "quotes"})
		},
		func() (*model.Requisition, error) {
			return fx.svc.Resubmit(ctx, req.ID, fx.caretakerID, "")
		},
		func() (*model.Requisition, error) {
			return fx.svc.WardenAct(ctx, req.ID, fx.wardenID, WardenActionDTO{Action: ActApprove})
		},
		func() (*model.Requisition, error) {
			return fx.svc.DeanAct(ctx, req.ID, fx.deanID, DeanActionDTO{Action: ActApprove})
		},
	}

	for i, step := range steps {
		out, err := step()
		require.NoError(t, err)
		assert.Len(t, out.Approvals, i+1)
		assert.Equal(t, i+1, out.Approvals[i].Seq)
		assert.Equal(t, i+1, out.Version)
	}
	assert.Equal(t, len(steps), fx.notifier.count())
}

// Two wardens race from the same snapshot: exactly one transition lands, the
// loser re-reads and fails its precondition against the winner's state.
func TestConcurrentTransitionsSingleWinner(t *testing.T) {
	fx := newEngineFixture(t)
	req := fx.create(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	acts := []WardenActionDTO{
		{Action: ActApprove},
		{Action: ActReject, Comments: "duplicate request"},
	}
	for i := range acts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.svc.WardenAct(ctx, req.ID, fx.wardenID, acts[i])
		}(i)
	}
	wg.Wait()

	var succeeded, invalid int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.IsInvalidState(err):
			invalid++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, invalid)

	stored, err := fx.repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Approvals, 1)
	assert.Equal(t, 1, stored.Version)
	assert.Contains(t, []string{model.ReqStatusPendingDean, model.ReqStatusRejectedByWarden}, stored.Status)
}

func TestListForCaretakerScopesToHostel(t *testing.T) {
	fx := newEngineFixture(t)
	fx.create(t)
	fx.create(t)

	reqs, total, err := fx.svc.ListForCaretaker(context.Background(), fx.caretakerID, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range reqs {
		assert.Equal(t, fx.hostelID, r.HostelID)
	}

	_, _, err = fx.svc.ListForCaretaker(context.Background(), uuid.New(), "", 1, 20)
	assert.True(t, apperr.IsNotFound(err))
}
