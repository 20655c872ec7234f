package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"intrack/models"
	"intrack/workflow"
)

func pendingExpense(requestedBy primitive.ObjectID) models.Expense {
	amount, _ := primitive.ParseDecimal128("100.0")
	now := time.Now().UTC()
	return models.Expense{
		ID:          primitive.NewObjectID(),
		ProjectID:   "P1",
		Amount:      amount,
		Currency:    "USD",
		Status:      workflow.StatusPendingManager,
		RequestedBy: requestedBy,
		Approvals:   []models.ApprovalEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TestExpenseDecisionLifecycle walks the full lifecycle an expense takes
// through the escalation ladder: each decision appends exactly one approval
// entry, and decisions against the settled expense keep the status but still
// append — current behavior, pinned on purpose.
func TestExpenseDecisionLifecycle(t *testing.T) {
	engineer := principal{ID: primitive.NewObjectID(), Name: "Avery", Role: "Engineer"}
	manager := principal{ID: primitive.NewObjectID(), Name: "Jordan", Role: "Manager"}
	accountant := principal{ID: primitive.NewObjectID(), Name: "Sam", Role: "Accountant"}
	admin := principal{ID: primitive.NewObjectID(), Name: "Riley", Role: "Admin"}

	expense := pendingExpense(engineer.ID)
	now := time.Now().UTC()

	// Manager gate.
	require.NoError(t, applyDecision(&expense, manager, workflow.ActionApprove, "", now))
	assert.Equal(t, workflow.StatusPendingAccountant, expense.Status)
	require.Len(t, expense.Approvals, 1)
	assert.Equal(t, manager.ID, expense.Approvals[0].By)
	assert.Equal(t, "Manager", expense.Approvals[0].Role)
	assert.Equal(t, workflow.ActionApprove, expense.Approvals[0].Action)

	// Accountant gate.
	require.NoError(t, applyDecision(&expense, accountant, workflow.ActionApprove, "ok to pay", now))
	assert.Equal(t, workflow.StatusApproved, expense.Status)
	require.Len(t, expense.Approvals, 2)
	assert.Equal(t, "ok to pay", expense.Approvals[1].Note)

	// Settled expense: status no-op, entry still appended.
	require.NoError(t, applyDecision(&expense, admin, workflow.ActionApprove, "", now))
	assert.Equal(t, workflow.StatusApproved, expense.Status)
	assert.Len(t, expense.Approvals, 3)

	// Entries are append-only: the earlier ones are untouched.
	assert.Equal(t, manager.ID, expense.Approvals[0].By)
	assert.Equal(t, accountant.ID, expense.Approvals[1].By)
}

func TestExpenseDecisionRejectAppendsEntry(t *testing.T) {
	manager := principal{ID: primitive.NewObjectID(), Name: "Jordan", Role: "Manager"}
	expense := pendingExpense(primitive.NewObjectID())

	require.NoError(t, applyDecision(&expense, manager, workflow.ActionReject, "over budget", time.Now().UTC()))
	assert.Equal(t, workflow.StatusRejected, expense.Status)
	require.Len(t, expense.Approvals, 1)
	assert.Equal(t, workflow.ActionReject, expense.Approvals[0].Action)
	assert.Equal(t, "over budget", expense.Approvals[0].Note)
}

// A forbidden decision leaves the expense untouched: no status change, no
// approval entry.
func TestExpenseDecisionForbiddenAppendsNothing(t *testing.T) {
	accountant := principal{ID: primitive.NewObjectID(), Name: "Sam", Role: "Accountant"}
	expense := pendingExpense(primitive.NewObjectID())
	before := expense.UpdatedAt

	err := applyDecision(&expense, accountant, workflow.ActionApprove, "", time.Now().UTC())
	assert.ErrorIs(t, err, workflow.ErrForbidden)
	assert.Equal(t, workflow.StatusPendingManager, expense.Status)
	assert.Empty(t, expense.Approvals)
	assert.Equal(t, before, expense.UpdatedAt)
}
