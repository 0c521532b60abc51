package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/eaglebank/accounts/shared/cqrs"
	"github.com/eaglebank/accounts/shared/events"
)

// StatusCommandHandler applies account.status_change_requested commands
// read from the commands stream.
type StatusCommandHandler struct {
	useCase AccountUseCaser
}

func NewStatusCommandHandler(useCase AccountUseCaser) *StatusCommandHandler {
	return &StatusCommandHandler{useCase: useCase}
}

// Handle returns an error only when the command may succeed on redelivery.
// Rejected transitions and malformed payloads are logged and acknowledged.
func (h *StatusCommandHandler) Handle(ctx context.Context, event events.Event) error {
	if event.Type != events.AccountStatusChangeRequested {
		return nil
	}

	var data events.AccountStatusChangeRequestedEvent
	if err := events.DecodeData(event, &data); err != nil {
		log.Printf("Dropping malformed %s command: %v", event.Type, err)
		return nil
	}

	env := h.useCase.UpdateStatus(ctx, cqrs.UpdateAccountStatusCommand{
		AccountID: data.AccountID,
		Status:    data.Status,
		Reason:    data.Reason,
	})
	if env.IsSuccess() {
		log.Printf("Account %s moved to %s via command stream", data.AccountID, env.Success.Data.Status)
		return nil
	}
	if env.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("status change for account %s failed: %s", data.AccountID, env.Error.Body.Error)
	}
	log.Printf("Rejected status change for account %s to %q: %s", data.AccountID, data.Status, env.Error.Body.Error)
	return nil
}
