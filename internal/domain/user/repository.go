package user

import (
	"context"
)

// UserRepository reads users by each identifier a client may present.
// Every Get method returns ErrUserNotFound when nothing matches.
type UserRepository interface {
	GetByUserID(ctx context.Context, userID string) (User, error)
	GetByLegacyID(ctx context.Context, legacyID string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	UpdateFaceDescriptor(ctx context.Context, id string, descriptor []float64) error
}
