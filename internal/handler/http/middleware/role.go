package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

// RequireEmployee rejects tokens that are not linked to an employee profile. Self-service
// routes act on that employee.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if claims.EmployeeID == nil {
			response.HandleError(w, auth.ErrEmployeeProfileRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
