package user

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses. The descriptor itself is never exposed.
type UserResponse struct {
	ID             string  `json:"id"`
	UserID         *string `json:"user_id,omitempty"`
	Username       string  `json:"username"`
	Email          *string `json:"email,omitempty"`
	Role           string  `json:"role"`
	FaceRegistered bool    `json:"face_registered"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		UserID:         u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           string(u.Role),
		FaceRegistered: u.HasFace(),
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
}

type RegisterFaceRequest struct {
	UserID     string    `json:"user_id"`
	Descriptor []float64 `json:"descriptor"`
}

// Validate checks the request. A positive length pins the descriptor dimensionality.
func (r *RegisterFaceRequest) Validate(length int) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	switch {
	case len(r.Descriptor) == 0:
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: "descriptor is required",
		})
	case !utils.AllFinite(r.Descriptor):
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: "descriptor must contain only finite numbers",
		})
	case length > 0 && len(r.Descriptor) != length:
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: fmt.Sprintf("descriptor must have exactly %d values", length),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
