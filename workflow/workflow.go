// Package workflow implements the approval state machine for expenses and
// leaves. Expenses climb a two-stage escalation ladder (manager gate, then
// accountant gate); leaves have a single manager gate. Rejection is terminal
// from any pending state.
package workflow

import (
	"errors"
	"fmt"
)

const (
	StatusPendingManager    = "pending_manager"
	StatusPendingAccountant = "pending_accountant"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ErrForbidden is returned when the acting role fails the gate for the
// entity's current pending stage.
var ErrForbidden = errors.New("forbidden")

// expenseGates maps each pending expense status to the roles allowed to
// decide at that stage. Terminal statuses carry no gate.
var expenseGates = map[string][]string{
	StatusPendingManager:    {"Manager", "Admin"},
	StatusPendingAccountant: {"Accountant", "Admin"},
}

// CanDecide reports whether role may submit a decision on an expense in the
// given status. Terminal statuses are not gated: a decision against an
// already-settled expense is accepted (and leaves the status unchanged).
func CanDecide(status, role string) bool {
	gate, ok := expenseGates[status]
	if !ok {
		return true
	}
	for _, allowed := range gate {
		if role == allowed {
			return true
		}
	}
	return false
}

// Decide runs one expense transition. It returns the new status, or
// ErrForbidden (wrapped with the stage that refused) when the role fails the
// gate for the current stage. Reject moves any pending status to rejected;
// approve advances one stage along the ladder. A terminal status is returned
// unchanged: the caller still records the decision in the approvals list.
func Decide(status, role, action string) (string, error) {
	if !CanDecide(status, role) {
		switch status {
		case StatusPendingManager:
			return "", fmt.Errorf("manager approval required: %w", ErrForbidden)
		default:
			return "", fmt.Errorf("accountant approval required: %w", ErrForbidden)
		}
	}

	if action == ActionReject {
		if status == StatusPendingManager || status == StatusPendingAccountant {
			return StatusRejected, nil
		}
		return status, nil
	}

	switch status {
	case StatusPendingManager:
		return StatusPendingAccountant, nil
	case StatusPendingAccountant:
		return StatusApproved, nil
	default:
		return status, nil
	}
}

// DecideLeave runs the single-stage leave transition. The role gate for
// leaves (Manager or Admin) is enforced at the route, not here. A leave that
// already reached a terminal status keeps it.
func DecideLeave(status, action string) string {
	if status != StatusPendingManager {
		return status
	}
	if action == ActionReject {
		return StatusRejected
	}
	return StatusApproved
}
