package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
)

// AdminOnly must run after AuthRequired.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if user.Role(claims.Role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
