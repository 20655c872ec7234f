// handlers/auth_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"intrack/models"
	"intrack/utils"
)

// userOut is the public shape of a user returned by auth endpoints.
func userOut(u models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID.Hex(),
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// Register creates a user account.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := utils.Validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Check duplicate email
	count, err := userCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		log.Printf("Register - unique check error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:    primitive.NewObjectID(),
		Name:  req.Name,
		Email: req.Email,
		// NOTE: plain text on purpose; see models.User.
		Password:  req.Password,
		Role:      req.Role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		log.Printf("Register - insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	log.Printf("Registered user %s (%s)", user.Email, user.Role)
	utils.RespondWithJSON(w, http.StatusCreated, userOut(user))
}

// Login verifies credentials and issues an opaque bearer token backed by a
// session document.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
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

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": strings.TrimSpace(req.Email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Login - find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication service unavailable")
		return
	}

	if user.Password != req.Password {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session := models.Session{
		ID:        primitive.NewObjectID(),
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := sessionCollection.InsertOne(ctx, session); err != nil {
		log.Printf("Login - session insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": session.Token,
		"user":  userOut(user),
	})
}

// Me returns the authenticated user's identity.
func Me(w http.ResponseWriter, r *http.Request) {
	p, ok := currentPrincipal(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"id":    p.ID.Hex(),
		"name":  p.Name,
		"email": p.Email,
		"role":  p.Role,
	})
}

// Logout revokes the bearer session. A request without a usable token still
// answers ok: there is nothing to revoke.
func Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.BearerToken(r)
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := sessionCollection.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		log.Printf("Logout - delete session error: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
