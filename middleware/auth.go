package middleware

import (
	"context"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"intrack/config"
	"intrack/database"
	"intrack/models"
	"intrack/utils"
)

// AuthMiddleware resolves a bearer token through the session collection and
// loads the user behind it. Handlers read the principal from the request
// context ("userID", "userName", "userEmail", "userRole"). Every request
// through here needs a token; the event stream route is registered without
// this middleware.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := utils.BearerToken(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		db := database.Client.Database(config.DatabaseName)

		var session models.Session
		err := db.Collection("sessions").FindOne(r.Context(), bson.M{"token": token}).Decode(&session)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid session")
			return
		}

		var user models.User
		err = db.Collection("users").FindOne(r.Context(), bson.M{"_id": session.UserID}).Decode(&user)
		if err != nil {
			log.Printf("AuthMiddleware: session %s points at missing user %s: %v",
				session.ID.Hex(), session.UserID.Hex(), err)
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", user.ID.Hex())
		ctx = context.WithValue(ctx, "userName", user.Name)
		ctx = context.WithValue(ctx, "userEmail", user.Email)
		ctx = context.WithValue(ctx, "userRole", user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route on the authenticated user's role. It must run
// after AuthMiddleware.
func RequireRoles(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value("userRole").(string)
			if !ok || role == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		})
	}
}
