// handlers/project_handler.go
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
)

// nextProjectNumber atomically increments and reads the project sequence.
// Mongo's findOneAndUpdate gives single-document atomicity, so concurrent
// creates get unique, strictly increasing numbers.
func nextProjectNumber(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var seq struct {
		Value int64 `bson:"value"`
	}
	err := counterCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "project_number"},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&seq)
	if err != nil {
		return 0, err
	}
	return seq.Value, nil
}

// CreateProject creates a project with an auto-incrementing number.
// Route-gated to Admin/Manager.
func CreateProject(w http.ResponseWriter, r *http.Request) {
	p, ok := currentPrincipal(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateProjectRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := utils.Validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if req.Status == "" {
		req.Status = "active"
	}
	if req.EngineerIDs == nil {
		req.EngineerIDs = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	number, err := nextProjectNumber(ctx)
	if err != nil {
		log.Printf("CreateProject - counter error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to allocate project number")
		return
	}

	now := time.Now().UTC()
	project := models.Project{
		ID:          primitive.NewObjectID(),
		Number:      number,
		Title:       req.Title,
		Client:      req.Client,
		Status:      req.Status,
		ManagerID:   req.ManagerID,
		EngineerIDs: req.EngineerIDs,
		CreatedBy:   p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := projectCollection.InsertOne(ctx, project); err != nil {
		log.Printf("CreateProject - insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	writeAuditLog(ctx, p, "create_project", "project", project.ID, bson.M{
		"number": number,
		"title":  req.Title,
	})

	log.Printf("Created project #%d (%s)", number, req.Title)
	utils.RespondWithJSON(w, http.StatusCreated, project)
}

// ListProjects returns all projects, newest first.
func ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := projectCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("ListProjects - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		log.Printf("ListProjects - decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode projects")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// GetProject returns one project by id.
func GetProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var project models.Project
	err = projectCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		log.Printf("GetProject - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, project)
}
