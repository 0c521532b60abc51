package service

import (
	"fmt"

	apperrors "github.com/eaglebank/accounts/shared/errors"
	"github.com/eaglebank/accounts/shared/models"
)

// transitions lists the statuses reachable from each non-terminal status.
var transitions = map[models.AccountStatus][]models.AccountStatus{
	models.AccountStatusActive:    {models.AccountStatusSuspended, models.AccountStatusClosed},
	models.AccountStatusSuspended: {models.AccountStatusActive, models.AccountStatusClosed},
}

// CanTransition reports whether an account in from may move to to.
func CanTransition(from, to models.AccountStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// validateTransition returns the conflict that blocks from -> to, or nil.
// The same-status check runs first, so CLOSED -> CLOSED reports the
// same-status error rather than the closed account error.
func validateTransition(from, to models.AccountStatus) *apperrors.Error {
	if from == to {
		return apperrors.New(apperrors.CodeSameStatus, processUpdateStatus,
			fmt.Sprintf("account is already in %s status", from))
	}
	if from.IsTerminal() {
		return apperrors.New(apperrors.CodeAccountClosed, processUpdateStatus,
			"account is closed and cannot be modified")
	}
	if !CanTransition(from, to) {
		return apperrors.New(apperrors.CodeInvalidStatus, processUpdateStatus,
			fmt.Sprintf("transition from %s to %s is not allowed", from, to))
	}
	return nil
}

// ReasonPolicy decides what a successful transition stores in
// suspension_reason.
type ReasonPolicy string

const (
	// ReasonPolicyOverwrite stores the caller's reason, possibly empty, on
	// every transition.
	ReasonPolicyOverwrite ReasonPolicy = "overwrite"
	// ReasonPolicyClearOnReactivation behaves like overwrite except that a
	// move to ACTIVE always clears the reason.
	ReasonPolicyClearOnReactivation ReasonPolicy = "clear_on_reactivation"
)

func ParseReasonPolicy(value string) (ReasonPolicy, error) {
	switch ReasonPolicy(value) {
	case "", ReasonPolicyOverwrite:
		return ReasonPolicyOverwrite, nil
	case ReasonPolicyClearOnReactivation:
		return ReasonPolicyClearOnReactivation, nil
	default:
		return "", fmt.Errorf("unknown reason policy %q", value)
	}
}

func (p ReasonPolicy) suspensionReason(to models.AccountStatus, reason string) string {
	if p == ReasonPolicyClearOnReactivation && to == models.AccountStatusActive {
		return ""
	}
	return reason
}
