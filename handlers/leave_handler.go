// handlers/leave_handler.go
package handlers

import (
	"context"
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

// CreateLeave files a leave request. Any authenticated role may file one.
func CreateLeave(w http.ResponseWriter, r *http.Request) {
	p, ok := currentPrincipal(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateLeaveRequest
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

	now := time.Now().UTC()
	leave := models.Leave{
		ID:        primitive.NewObjectID(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    workflow.StatusPendingManager,
		UserID:    p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := leaveCollection.InsertOne(ctx, leave); err != nil {
		log.Printf("CreateLeave - insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create leave request")
		return
	}

	writeAuditLog(ctx, p, "create_leave", "leave", leave.ID, bson.M{
		"startDate": req.StartDate,
		"endDate":   req.EndDate,
	})
	ws.SendCreated("LEAVE_CREATED", leave.ID.Hex(), leave, p.ID.Hex(), p.Name)

	utils.RespondWithJSON(w, http.StatusCreated, leave)
}

// ApproveLeave submits a single-stage decision against a leave request.
// Route-gated to Manager/Admin; a settled leave keeps its status.
func ApproveLeave(w http.ResponseWriter, r *http.Request) {
	p, ok := currentPrincipal(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	vars := mux.Vars(r)
	leaveID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid leave ID format")
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

	var leave models.Leave
	err = leaveCollection.FindOne(ctx, bson.M{"_id": leaveID}).Decode(&leave)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Leave not found")
			return
		}
		log.Printf("ApproveLeave - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch leave request")
		return
	}

	newStatus := workflow.DecideLeave(leave.Status, req.Action)
	now := time.Now().UTC()

	_, err = leaveCollection.UpdateOne(
		ctx,
		bson.M{"_id": leaveID},
		bson.M{"$set": bson.M{"status": newStatus, "updatedAt": now}},
	)
	if err != nil {
		log.Printf("ApproveLeave - update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record decision")
		return
	}

	writeAuditLog(ctx, p, "leave_decision", "leave", leaveID, bson.M{
		"action":    req.Action,
		"oldStatus": leave.Status,
		"newStatus": newStatus,
		"note":      req.Note,
	})
	ws.SendLeaveDecision(leaveID.Hex(), leave.Status, newStatus, p.ID.Hex(), p.Name)

	leave.Status = newStatus
	leave.UpdatedAt = now
	utils.RespondWithJSON(w, http.StatusOK, leave)
}

// ListLeaves returns all leave requests, newest first.
func ListLeaves(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := leaveCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("ListLeaves - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch leave requests")
		return
	}
	defer cursor.Close(ctx)

	var leaves []models.Leave
	if err := cursor.All(ctx, &leaves); err != nil {
		log.Printf("ListLeaves - decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode leave requests")
		return
	}
	if leaves == nil {
		leaves = []models.Leave{}
	}

	utils.RespondWithJSON(w, http.StatusOK, leaves)
}
