// Package service owns the account lifecycle: creation, lookup and the
// ACTIVE/SUSPENDED/CLOSED state machine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/eaglebank/accounts/shared/events"
	apperrors "github.com/eaglebank/accounts/shared/errors"
	"github.com/eaglebank/accounts/shared/models"
	"github.com/eaglebank/accounts/shared/utils"
)

const (
	processCreateAccount = "AccountService.CreateAccount"
	processGetAccount    = "AccountService.GetAccount"
	processUpdateStatus  = "AccountService.UpdateStatus"
)

// AccountStore is the persistence collaborator, keyed by account id.
// GetByID and Update return models.ErrAccountNotFound for unknown ids.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) (string, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, id string, account *models.Account) (*models.Account, error)
}

// EventPublisher emits domain events. Publish failures are logged only.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

type Option func(*AccountService)

func WithPublisher(p EventPublisher) Option {
	return func(s *AccountService) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *AccountService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *AccountService) { s.newID = newID }
}

func WithReasonPolicy(p ReasonPolicy) Option {
	return func(s *AccountService) { s.reasonPolicy = p }
}

type AccountService struct {
	store        AccountStore
	publisher    EventPublisher
	now          func() time.Time
	newID        func() string
	reasonPolicy ReasonPolicy
}

func NewAccountService(store AccountStore, opts ...Option) *AccountService {
	s := &AccountService{
		store:        store,
		now:          time.Now,
		newID:        utils.NewAccountID,
		reasonPolicy: ReasonPolicyOverwrite,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount persists a new ACTIVE account. The id is always generated
// here; an account that already carries one is rejected without a write.
func (s *AccountService) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account == nil {
		return nil, apperrors.New(apperrors.CodeInvalidRequestPayload, processCreateAccount, "account is required")
	}
	if account.ID != "" {
		log.Printf("Account creation rejected: id must not be provided (got %s)", account.ID)
		return nil, apperrors.New(apperrors.CodeAccountIDNotAllowed, processCreateAccount,
			fmt.Sprintf("cannot create account with id %s", account.ID))
	}
	if strings.TrimSpace(account.TenantID) == "" {
		return nil, apperrors.New(apperrors.CodeTenantIDRequired, processCreateAccount, "tenant_id is required")
	}
	if strings.TrimSpace(account.OwnerID) == "" {
		return nil, apperrors.New(apperrors.CodeOwnerIDRequired, processCreateAccount, "owner_id is required")
	}
	if account.Status != "" && account.Status != models.AccountStatusActive {
		return nil, apperrors.New(apperrors.CodeInvalidInitialStatus, processCreateAccount,
			fmt.Sprintf("new accounts start as %s, got %s", models.AccountStatusActive, account.Status))
	}

	now := s.timestamp()
	created := &models.Account{
		ID:        s.newID(),
		TenantID:  account.TenantID,
		OwnerID:   account.OwnerID,
		Status:    models.AccountStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.store.Create(ctx, created)
	if err != nil {
		log.Printf("Failed to persist account for tenant %s: %v", created.TenantID, err)
		return nil, apperrors.Wrap(apperrors.CodePersistenceFailed, processCreateAccount, "failed to create account", err)
	}
	if id == "" {
		log.Printf("Failed to persist account for tenant %s: store returned no id", created.TenantID)
		return nil, apperrors.New(apperrors.CodePersistenceFailed, processCreateAccount, "failed to create account")
	}
	created.ID = id

	s.publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		AccountID: created.ID,
		TenantID:  created.TenantID,
		OwnerID:   created.OwnerID,
		Status:    string(created.Status),
	})
	return created, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.New(apperrors.CodeAccountIDRequired, processGetAccount, "account_id is required")
	}
	return s.load(ctx, id, processGetAccount)
}

// UpdateStatus moves account id to target. Rejected transitions perform no
// write. The read-modify-write is not atomic: concurrent updates of the same
// id can overwrite each other.
func (s *AccountService) UpdateStatus(ctx context.Context, id string, target models.AccountStatus, reason string) (*models.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.New(apperrors.CodeAccountIDRequired, processUpdateStatus, "account_id is required")
	}
	to, ok := models.ParseAccountStatus(string(target))
	if !ok {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, processUpdateStatus,
			fmt.Sprintf("unknown account status %q", target))
	}

	account, err := s.load(ctx, id, processUpdateStatus)
	if err != nil {
		return nil, err
	}

	from := account.Status
	if appErr := validateTransition(from, to); appErr != nil {
		log.Printf("Account %s status change %s -> %s rejected: %s", id, from, to, appErr.Message)
		return nil, appErr
	}

	account.Status = to
	account.SuspensionReason = s.reasonPolicy.suspensionReason(to, reason)
	account.UpdatedAt = s.nextUpdatedAt(account.UpdatedAt)

	updated, err := s.store.Update(ctx, account.ID, account)
	if errors.Is(err, models.ErrAccountNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeAccountNotFound, processUpdateStatus, "account not found", err)
	}
	if err != nil {
		log.Printf("Failed to persist status change for account %s: %v", id, err)
		return nil, apperrors.Wrap(apperrors.CodePersistenceFailed, processUpdateStatus, "failed to update account status", err)
	}

	s.publish(ctx, events.AccountStatusChanged, events.AccountStatusChangedEvent{
		AccountID: updated.ID,
		From:      string(from),
		To:        string(updated.Status),
		Reason:    updated.SuspensionReason,
	})
	return updated, nil
}

func (s *AccountService) load(ctx context.Context, id, process string) (*models.Account, error) {
	account, err := s.store.GetByID(ctx, id)
	if errors.Is(err, models.ErrAccountNotFound) {
		log.Printf("Account %s not found", id)
		return nil, apperrors.Wrap(apperrors.CodeAccountNotFound, process, "account not found", err)
	}
	if err != nil {
		log.Printf("Failed to load account %s: %v", id, err)
		return nil, apperrors.Wrap(apperrors.CodePersistenceFailed, process, "failed to load account", err)
	}
	return account, nil
}

// timestamp reads the clock at microsecond precision, the finest every
// store keeps, so stored and returned times agree.
func (s *AccountService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns the current time, bumped past prev when the clock has
// not advanced so updated_at is strictly increasing once stored.
func (s *AccountService) nextUpdatedAt(prev time.Time) time.Time {
	now := s.timestamp()
	prev = prev.UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func (s *AccountService) publish(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
