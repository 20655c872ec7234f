// handlers/document_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"intrack/models"
	"intrack/utils"
)

// CreateDocument records a document reference against a project.
// Route-gated to Engineer/Manager/Admin.
func CreateDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := currentPrincipal(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateDocumentRequest
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
	doc := models.Document{
		ID:        primitive.NewObjectID(),
		ProjectID: req.ProjectID,
		Type:      req.Type,
		Title:     req.Title,
		URL:       req.URL,
		CreatedBy: p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := documentCollection.InsertOne(ctx, doc); err != nil {
		log.Printf("CreateDocument - insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

// ListDocuments returns documents, newest first, optionally filtered by
// ?project_id=.
func ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		filter["projectId"] = projectID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := documentCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("ListDocuments - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("ListDocuments - decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode documents")
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	utils.RespondWithJSON(w, http.StatusOK, docs)
}
