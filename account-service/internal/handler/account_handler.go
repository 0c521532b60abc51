package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/accounts/shared/cqrs"
	"github.com/eaglebank/accounts/shared/middleware"
	"github.com/eaglebank/accounts/shared/models"
	"github.com/gin-gonic/gin"
)

const (
	processCreateAccount = "AccountHandler.CreateAccount"
	processUpdateStatus  = "AccountHandler.UpdateStatus"
)

// AccountUseCaser defines the operations used by AccountHandler.
type AccountUseCaser interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) models.Envelope
	GetAccount(context.Context, cqrs.GetAccountQuery) models.Envelope
	UpdateStatus(context.Context, cqrs.UpdateAccountStatusCommand) models.Envelope
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	useCase AccountUseCaser
}

// ID is accepted only so that the service can reject it.
type CreateAccountRequest struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id" validate:"required,max=128"`
	OwnerID  string `json:"owner_id" validate:"required,max=128"`
}

type UpdateStatusRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	Status    string `json:"status" validate:"required,account_status"`
	Reason    string `json:"reason" validate:"max=512"`
}

func NewAccountHandler(useCase AccountUseCaser) *AccountHandler {
	return &AccountHandler{useCase: useCase}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, processCreateAccount, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, processCreateAccount, validationErrors)
		return
	}

	env := h.useCase.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		AccountID: req.ID,
		TenantID:  req.TenantID,
		OwnerID:   req.OwnerID,
	})
	middleware.RespondWithEnvelope(c, env)
}

// GetAccount serves both /accounts/get?account_id= and /accounts/:account_id.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID := c.Param("account_id")
	if accountID == "" {
		accountID = c.Query("account_id")
	}

	env := h.useCase.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: accountID})
	middleware.RespondWithEnvelope(c, env)
}

func (h *AccountHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, processUpdateStatus, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, processUpdateStatus, validationErrors)
		return
	}

	env := h.useCase.UpdateStatus(c.Request.Context(), cqrs.UpdateAccountStatusCommand{
		AccountID: req.AccountID,
		Status:    req.Status,
		Reason:    req.Reason,
	})
	middleware.RespondWithEnvelope(c, env)
}

func (h *AccountHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
