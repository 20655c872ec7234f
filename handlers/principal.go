// handlers/principal.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"intrack/models"
)

// principal is the authenticated identity middleware.AuthMiddleware leaves
// in the request context.
type principal struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Role  string
}

func currentPrincipal(r *http.Request) (principal, bool) {
	idStr, ok := r.Context().Value("userID").(string)
	if !ok || idStr == "" {
		return principal{}, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return principal{}, false
	}

	name, _ := r.Context().Value("userName").(string)
	email, _ := r.Context().Value("userEmail").(string)
	role, _ := r.Context().Value("userRole").(string)

	return principal{ID: id, Name: name, Email: email, Role: role}, true
}

// writeAuditLog records an action against an entity. Audit failures are
// logged, never surfaced: the request that triggered them already succeeded.
func writeAuditLog(ctx context.Context, p principal, action, entityType string, entityID primitive.ObjectID, details bson.M) {
	if auditLogCollection == nil {
		return
	}

	entry := models.AuditLog{
		ID:         primitive.NewObjectID(),
		UserID:     p.ID,
		UserName:   p.Name,
		UserRole:   p.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := auditLogCollection.InsertOne(ctx, entry); err != nil {
		log.Printf("Failed to write audit log (%s %s): %v", action, entityID.Hex(), err)
	}
}
