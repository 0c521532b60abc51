// Package usecase adapts transport-shaped commands and queries to
// AccountService calls and wraps every outcome in a models.Envelope.
package usecase

import (
	"context"
	"net/http"

	"github.com/eaglebank/accounts/shared/cqrs"
	apperrors "github.com/eaglebank/accounts/shared/errors"
	"github.com/eaglebank/accounts/shared/models"
)

const (
	processCreateAccount = "AccountUseCase.CreateAccount"
	processGetAccount    = "AccountUseCase.GetAccount"
	processUpdateStatus  = "AccountUseCase.UpdateStatus"
)

// AccountServicer is the domain surface the use case depends on.
type AccountServicer interface {
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	UpdateStatus(ctx context.Context, id string, target models.AccountStatus, reason string) (*models.Account, error)
}

type AccountUseCase struct {
	service AccountServicer
}

func NewAccountUseCase(service AccountServicer) *AccountUseCase {
	return &AccountUseCase{service: service}
}

// CreateAccount opens a new account for the command's tenant and owner.
// New accounts always start ACTIVE.
func (u *AccountUseCase) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) models.Envelope {
	account, err := u.service.CreateAccount(ctx, &models.Account{
		ID:       cmd.AccountID,
		TenantID: cmd.TenantID,
		OwnerID:  cmd.OwnerID,
		Status:   models.AccountStatusActive,
	})
	if err != nil {
		return errorEnvelope(err, processCreateAccount)
	}
	return models.NewSuccessEnvelope(http.StatusOK, "Account created successfully", processCreateAccount, account)
}

func (u *AccountUseCase) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) models.Envelope {
	account, err := u.service.GetAccount(ctx, q.AccountID)
	if err != nil {
		return errorEnvelope(err, processGetAccount)
	}
	return models.NewSuccessEnvelope(http.StatusOK, "Account retrieved successfully", processGetAccount, account)
}

func (u *AccountUseCase) UpdateStatus(ctx context.Context, cmd cqrs.UpdateAccountStatusCommand) models.Envelope {
	account, err := u.service.UpdateStatus(ctx, cmd.AccountID, models.AccountStatus(cmd.Status), cmd.Reason)
	if err != nil {
		return errorEnvelope(err, processUpdateStatus)
	}
	return models.NewSuccessEnvelope(http.StatusOK, "Account status updated successfully", processUpdateStatus, account)
}

// errorEnvelope translates any error into an error envelope. The process tag
// names the layer that raised the error when it is known.
func errorEnvelope(err error, fallbackProcess string) models.Envelope {
	appErr := apperrors.From(err)
	process := appErr.Process
	if process == "" {
		process = fallbackProcess
	}

	// Message never includes the wrapped cause, so store errors stay in logs.
	body := models.ErrorMessage{Error: appErr.Message, Code: string(appErr.Code)}
	return models.NewErrorEnvelope(appErr.Code.HTTPStatus(), summary(appErr.Code.Kind()), process, body)
}

func summary(kind apperrors.Kind) string {
	switch kind {
	case apperrors.KindValidation:
		return "Bad Request"
	case apperrors.KindNotFound:
		return "Account not found"
	case apperrors.KindConflict:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}
