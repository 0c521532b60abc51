package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaglebank/accounts/account-service/internal/repository"
	"github.com/eaglebank/accounts/account-service/internal/service"
	"github.com/eaglebank/accounts/account-service/internal/usecase"
	"github.com/eaglebank/accounts/shared/cqrs"
	"github.com/eaglebank/accounts/shared/models"
)

// ---- mock implementation ----

type mockAccountUseCase struct {
	createFn func(cqrs.CreateAccountCommand) models.Envelope
	getFn    func(cqrs.GetAccountQuery) models.Envelope
	updateFn func(cqrs.UpdateAccountStatusCommand) models.Envelope
}

func notConfigured() models.Envelope {
	return models.NewErrorEnvelope(http.StatusInternalServerError, "not configured", "mock", models.ErrorMessage{Error: "not configured"})
}

func (m *mockAccountUseCase) CreateAccount(_ context.Context, cmd cqrs.CreateAccountCommand) models.Envelope {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return notConfigured()
}

func (m *mockAccountUseCase) GetAccount(_ context.Context, q cqrs.GetAccountQuery) models.Envelope {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return notConfigured()
}

func (m *mockAccountUseCase) UpdateStatus(_ context.Context, cmd cqrs.UpdateAccountStatusCommand) models.Envelope {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return notConfigured()
}

// ---- helpers ----

func newAccountTestRouter(uc AccountUseCaser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAccountHandler(uc)
	r.GET("/health", h.Health)
	Register(r, Routes(h), TargetHTTP)
	return r
}

func doRequest(handler http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, url, nil)
	case string:
		req = httptest.NewRequest(method, url, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		raw, _ := json.Marshal(b)
		req = httptest.NewRequest(method, url, strings.NewReader(string(raw)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// ---- test data ----

var testAccount = &models.Account{
	ID: "01HZX0000000000000000000AA", TenantID: "tenant-1", OwnerID: "owner-1",
	Status: models.AccountStatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
}

func okEnvelope(process string) models.Envelope {
	return models.NewSuccessEnvelope(http.StatusOK, "ok", process, testAccount)
}

func errEnvelope(status int) models.Envelope {
	return models.NewErrorEnvelope(status, "failed", "AccountService.UpdateStatus", models.ErrorMessage{Error: "failed"})
}

// ---- tests ----

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		createFn       func(cqrs.CreateAccountCommand) models.Envelope
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success - create account",
			body: map[string]any{"tenant_id": "tenant-1", "owner_id": "owner-1"},
			createFn: func(cmd cqrs.CreateAccountCommand) models.Envelope {
				return okEnvelope("AccountUseCase.CreateAccount")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]any{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_PAYLOAD",
		},
		{
			name:           "bad request - malformed json",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - caller supplied id is forwarded and rejected",
			body: map[string]any{"id": "abc", "tenant_id": "tenant-1", "owner_id": "owner-1"},
			createFn: func(cmd cqrs.CreateAccountCommand) models.Envelope {
				if cmd.AccountID != "abc" {
					return notConfigured()
				}
				return models.NewErrorEnvelope(http.StatusBadRequest, "Bad Request", "AccountService.CreateAccount",
					models.ErrorMessage{Error: "cannot create account with id abc", Code: "ACCOUNT_ID_NOT_ALLOWED"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "ACCOUNT_ID_NOT_ALLOWED",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountUseCase{createFn: tt.createFn})
			w := doRequest(router, http.MethodPost, "/accounts/create", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			out := decodeBody(t, w)
			assert.EqualValues(t, tt.expectedStatus, out["status_code"])
			assert.NotEmpty(t, out["process"])
			if tt.expectedCode != "" {
				body, ok := out["body"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, body["code"])
			}
		})
	}
}

func TestGetAccount(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedID     string
		expectedStatus int
	}{
		{name: "success - query parameter", url: "/accounts/get?account_id=acc-1", expectedID: "acc-1", expectedStatus: http.StatusOK},
		{name: "success - path parameter", url: "/accounts/acc-2", expectedID: "acc-2", expectedStatus: http.StatusOK},
		{name: "not found - account does not exist", url: "/accounts/get?account_id=nonexistent", expectedID: "nonexistent", expectedStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received string
			uc := &mockAccountUseCase{getFn: func(q cqrs.GetAccountQuery) models.Envelope {
				received = q.AccountID
				if q.AccountID == "nonexistent" {
					return errEnvelope(http.StatusNotFound)
				}
				return okEnvelope("AccountUseCase.GetAccount")
			}}
			w := doRequest(newAccountTestRouter(uc), http.MethodGet, tt.url, nil)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedID, received)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		updateFn       func(cqrs.UpdateAccountStatusCommand) models.Envelope
		expectedStatus int
	}{
		{
			name: "success - suspend account",
			body: map[string]any{"account_id": "acc-1", "status": "SUSPENDED", "reason": "fraud review"},
			updateFn: func(cmd cqrs.UpdateAccountStatusCommand) models.Envelope {
				if cmd.Reason != "fraud review" || cmd.Status != "SUSPENDED" {
					return notConfigured()
				}
				return okEnvelope("AccountUseCase.UpdateStatus")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "success - lower case status accepted",
			body: map[string]any{"account_id": "acc-1", "status": "closed"},
			updateFn: func(cmd cqrs.UpdateAccountStatusCommand) models.Envelope {
				return okEnvelope("AccountUseCase.UpdateStatus")
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - unknown status",
			body:           map[string]any{"account_id": "acc-1", "status": "FROZEN"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing account id",
			body:           map[string]any{"status": "ACTIVE"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "conflict - rejected transition",
			body: map[string]any{"account_id": "acc-1", "status": "ACTIVE"},
			updateFn: func(cmd cqrs.UpdateAccountStatusCommand) models.Envelope {
				return errEnvelope(http.StatusConflict)
			},
			expectedStatus: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountUseCase{updateFn: tt.updateFn})
			w := doRequest(router, http.MethodPatch, "/accounts/update_status", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestHealth(t *testing.T) {
	w := doRequest(newAccountTestRouter(&mockAccountUseCase{}), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestFunctionHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uc := &mockAccountUseCase{
		getFn: func(q cqrs.GetAccountQuery) models.Envelope { return okEnvelope("AccountUseCase.GetAccount") },
	}
	handlers := NewFunctionHandlers(Routes(NewAccountHandler(uc)))

	assert.Len(t, handlers, 3)
	assert.Contains(t, handlers, "create_account")
	assert.Contains(t, handlers, "get_account")
	assert.Contains(t, handlers, "update_account_status")
	assert.NotContains(t, handlers, "get_account_by_id")

	getFn := handlers["get_account"]
	w := doRequest(getFn, http.MethodGet, "/accounts/get?account_id=acc-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(getFn, http.MethodPost, "/accounts/get", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	mux := FunctionMux(handlers)
	w = doRequest(mux, http.MethodGet, "/get_account/accounts/get?account_id=acc-1", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// Full stack over HTTP against the in-memory store.
func TestAccountLifecycleOverHTTP(t *testing.T) {
	svc := service.NewAccountService(repository.NewMemoryAccountRepository())
	router := newAccountTestRouter(usecase.NewAccountUseCase(svc))

	w := doRequest(router, http.MethodPost, "/accounts/create", map[string]any{"tenant_id": "t1", "owner_id": "o1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decodeBody(t, w)
	data := created["data"].(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "ACTIVE", data["status"])
	assert.Equal(t, "AccountUseCase.CreateAccount", created["process"])

	steps := []struct {
		status         string
		expectedStatus int
	}{
		{"SUSPENDED", http.StatusOK},
		{"SUSPENDED", http.StatusConflict},
		{"ACTIVE", http.StatusOK},
		{"CLOSED", http.StatusOK},
		{"ACTIVE", http.StatusConflict},
	}
	for _, step := range steps {
		w = doRequest(router, http.MethodPatch, "/accounts/update_status", map[string]any{"account_id": id, "status": step.status})
		assert.Equal(t, step.expectedStatus, w.Code, "to %s: %s", step.status, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/accounts/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CLOSED", decodeBody(t, w)["data"].(map[string]any)["status"])

	w = doRequest(router, http.MethodGet, "/accounts/get?account_id=nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "AccountService.GetAccount", decodeBody(t, w)["process"])
}
