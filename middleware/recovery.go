// middleware/recovery.go
package middleware

import (
	"log"
	"net/http"

	"intrack/utils"
)

// RecoveryMiddleware recovers from handler panics and answers with the same
// JSON error shape the handlers use.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC recovered on %s %s: %v", r.Method, r.URL.Path, err)
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
