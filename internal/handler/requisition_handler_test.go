package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"
	"hosteladmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRequisitionService returns canned results so the test exercises only the
// HTTP boundary: routing, auth middleware, binding and error mapping.
type stubRequisitionService struct {
	created *model.Requisition
	acted   *model.Requisition
	err     error

	gotCaretakerID uuid.UUID
	gotActorID     uuid.UUID
	gotWardenDTO   service.WardenActionDTO
}

func (s *stubRequisitionService) Create(_ context.Context, caretakerID uuid.UUID, _ service.CreateRequisitionDTO) (*model.Requisition, error) {
	s.gotCaretakerID = caretakerID
	return s.created, s.err
}

func (s *stubRequisitionService) Get(context.Context, uuid.UUID) (*model.Requisition, error) {
	return s.acted, s.err
}

func (s *stubRequisitionService) List(context.Context, repository.RequisitionFilter) ([]model.Requisition, int64, error) {
	return nil, 0, s.err
}

func (s *stubRequisitionService) ListForCaretaker(context.Context, uuid.UUID, string, int, int) ([]model.Requisition, int64, error) {
	return nil, 0, s.err
}

func (s *stubRequisitionService) ListForWarden(context.Context, uuid.UUID, string, int, int) ([]model.Requisition, int64, error) {
	return nil, 0, s.err
}

func (s *stubRequisitionService) WardenAct(_ context.Context, _ uuid.UUID, actorID uuid.UUID, dto service.WardenActionDTO) (*model.Requisition, error) {
	s.gotActorID = actorID
	s.gotWardenDTO = dto
	return s.acted, s.err
}

func (s *stubRequisitionService) DeanAct(context.Context, uuid.UUID, uuid.UUID, service.DeanActionDTO) (*model.Requisition, error) {
	return s.acted, s.err
}

func (s *stubRequisitionService) AdminAct(context.Context, uuid.UUID, uuid.UUID, service.AdminActionDTO) (*model.Requisition, error) {
	return s.acted, s.err
}

func (s *stubRequisitionService) Resubmit(context.Context, uuid.UUID, uuid.UUID, string) (*model.Requisition, error) {
	return s.acted, s.err
}

func (s *stubRequisitionService) Cancel(context.Context, uuid.UUID, uuid.UUID, string) (*model.Requisition, error) {
	return s.acted, s.err
}

func signToken(t *testing.T, userID uuid.UUID, role model.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"role": role.String(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("default_super_secret_key"))
	require.NoError(t, err)
	return signed
}

func newTestRouter(stub *stubRequisitionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewRequisitionHandler(stub).RegisterRoutes(router.Group(""))
	return router
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRequisitionEndpoint(t *testing.T) {
	caretakerID := uuid.New()
	stub := &stubRequisitionService{
		created: &model.Requisition{
			ID:            uuid.New(),
			RequisitionNo: "REQ-TEST-00001",
			Status:        model.ReqStatusPendingWarden,
		},
	}
	router := newTestRouter(stub)

	body := map[string]interface{}{
		"title":            "Replace water pump",
		"description":      "The main pump in block A failed and needs replacement",
		"category":         "repair",
		"estimated_amount": "12000",
	}
	w := doRequest(router, http.MethodPost, "/api/caretaker/requisitions",
		signToken(t, caretakerID, model.RoleCaretaker), body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, caretakerID, stub.gotCaretakerID)
	assert.Contains(t, w.Body.String(), "REQ-TEST-00001")
}

func TestCreateRequisitionRejectsShortTitle(t *testing.T) {
	router := newTestRouter(&stubRequisitionService{})

	body := map[string]interface{}{
		"title":            "ab",
		"description":      "long enough description text",
		"category":         "repair",
		"estimated_amount": "100",
	}
	w := doRequest(router, http.MethodPost, "/api/caretaker/requisitions",
		signToken(t, uuid.New(), model.RoleCaretaker), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequisitionRouteRoleGates(t *testing.T) {
	router := newTestRouter(&stubRequisitionService{})

	// No token at all.
	w := doRequest(router, http.MethodPost, "/api/caretaker/requisitions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong role for the caretaker surface.
	w = doRequest(router, http.MethodPost, "/api/caretaker/requisitions",
		signToken(t, uuid.New(), model.RoleWarden), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Students never reach the workflow routes.
	w = doRequest(router, http.MethodGet, "/api/requisitions/"+uuid.NewString(),
		signToken(t, uuid.New(), model.RoleStudent), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWardenActEndpoint(t *testing.T) {
	wardenID := uuid.New()
	stub := &stubRequisitionService{
		acted: &model.Requisition{ID: uuid.New(), Status: model.ReqStatusPendingDean},
	}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPut, "/api/warden/requisitions/"+uuid.NewString(),
		signToken(t, wardenID, model.RoleWarden),
		map[string]string{"action": "approve", "comments": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wardenID, stub.gotActorID)
	assert.Equal(t, "approve", stub.gotWardenDTO.Action)
}

func TestWardenActInvalidUUID(t *testing.T) {
	router := newTestRouter(&stubRequisitionService{})

	w := doRequest(router, http.MethodPut, "/api/warden/requisitions/not-a-uuid",
		signToken(t, uuid.New(), model.RoleWarden),
		map[string]string{"action": "approve"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.NotFoundf("requisition not found"), http.StatusNotFound},
		{"invalid state", apperr.InvalidStatef("already completed"), http.StatusConflict},
		{"forbidden", apperr.Forbiddenf("not your hostel"), http.StatusForbidden},
		{"validation", apperr.Validationf("comments required"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubRequisitionService{err: tc.err})
			w := doRequest(router, http.MethodPut, "/api/warden/requisitions/"+uuid.NewString(),
				signToken(t, uuid.New(), model.RoleWarden),
				map[string]string{"action": "approve", "comments": "x"})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
