package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
)

// claimsFromRequest returns the caller identity. Routes behind AuthRequired always have one.
func claimsFromRequest(r *http.Request) auth.Claims {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	return claims
}

// selfEmployeeID is the employee id of the caller. RequireEmployee guarantees it is set.
func selfEmployeeID(r *http.Request) string {
	claims := claimsFromRequest(r)
	if claims.EmployeeID == nil {
		return ""
	}
	return *claims.EmployeeID
}

// getStringQueryParam returns a pointer to the query value, or nil when it is empty.
func getStringQueryParam(r *http.Request, key string) *string {
	if val := r.URL.Query().Get(key); val != "" {
		return &val
	}
	return nil
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
