package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "identity"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, u)
}
