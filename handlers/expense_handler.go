// handlers/expense_handler.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"intrack/models"
	"intrack/utils"
	ws "intrack/websocket"
	"intrack/workflow"
)

// CreateExpense creates an expense at the bottom of the escalation ladder.
// Route-gated to Engineer/Manager/Admin.
func CreateExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := currentPrincipal(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateExpenseRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := utils.Validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !req.Amount.IsPositive() {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	amount, err := primitive.ParseDecimal128(req.Amount.String())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	expense := models.Expense{
		ID:          primitive.NewObjectID(),
		ProjectID:   req.ProjectID,
		Amount:      amount,
		Currency:    req.Currency,
		Description: req.Description,
		Status:      workflow.StatusPendingManager,
		RequestedBy: p.ID,
		Approvals:   []models.ApprovalEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := expenseCollection.InsertOne(ctx, expense); err != nil {
		log.Printf("CreateExpense - insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	writeAuditLog(ctx, p, "create_expense", "expense", expense.ID, bson.M{
		"projectId": req.ProjectID,
		"amount":    req.Amount.String(),
		"currency":  req.Currency,
	})
	ws.SendCreated("EXPENSE_CREATED", expense.ID.Hex(), expense, p.ID.Hex(), p.Name)

	utils.RespondWithJSON(w, http.StatusCreated, expense)
}

// applyDecision runs one workflow transition against the in-memory expense:
// the status moves (or stays, for a settled expense) and exactly one
// approval entry is appended. On ErrForbidden the expense is untouched.
func applyDecision(expense *models.Expense, p principal, action, note string, now time.Time) error {
	newStatus, err := workflow.Decide(expense.Status, p.Role, action)
	if err != nil {
		return err
	}

	expense.Status = newStatus
	expense.Approvals = append(expense.Approvals, models.ApprovalEntry{
		By:     p.ID,
		Role:   p.Role,
		Action: action,
		Note:   note,
		At:     now,
	})
	expense.UpdatedAt = now
	return nil
}

// ApproveExpense submits an approve/reject decision against an expense. The
// workflow package decides whether the acting role may decide at the current
// stage and which status comes next; every accepted decision appends one
// approval entry, even against an already-settled expense.
func ApproveExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := currentPrincipal(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	vars := mux.Vars(r)
	expenseID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var req DecisionRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := utils.Validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var expense models.Expense
	err = expenseCollection.FindOne(ctx, bson.M{"_id": expenseID}).Decode(&expense)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Expense not found")
			return
		}
		log.Printf("ApproveExpense - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch expense")
		return
	}

	oldStatus := expense.Status
	now := time.Now().UTC()
	if err := applyDecision(&expense, p, req.Action, req.Note, now); err != nil {
		if errors.Is(err, workflow.ErrForbidden) {
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Decision failed")
		return
	}

	entry := expense.Approvals[len(expense.Approvals)-1]

	// Known race: two concurrent decisions both land; last $set on status
	// wins and both entries are pushed. A status guard in this filter would
	// make it a compare-and-swap.
	_, err = expenseCollection.UpdateOne(
		ctx,
		bson.M{"_id": expenseID},
		bson.M{
			"$set":  bson.M{"status": expense.Status, "updatedAt": now},
			"$push": bson.M{"approvals": entry},
		},
	)
	if err != nil {
		log.Printf("ApproveExpense - update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record decision")
		return
	}

	writeAuditLog(ctx, p, "expense_decision", "expense", expenseID, bson.M{
		"action":    req.Action,
		"oldStatus": oldStatus,
		"newStatus": expense.Status,
	})
	ws.SendExpenseDecision(expenseID.Hex(), oldStatus, expense.Status, p.ID.Hex(), p.Name)

	log.Printf("Expense %s: %s by %s (%s) → %s", expenseID.Hex(), req.Action, p.Name, p.Role, expense.Status)

	// Re-read so the response carries the full approvals list.
	err = expenseCollection.FindOne(ctx, bson.M{"_id": expenseID}).Decode(&expense)
	if err != nil {
		log.Printf("ApproveExpense - reload error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch expense")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, expense)
}

// ListExpenses returns all expenses, newest first.
func ListExpenses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := expenseCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("ListExpenses - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		log.Printf("ListExpenses - decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode expenses")
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	utils.RespondWithJSON(w, http.StatusOK, expenses)
}
