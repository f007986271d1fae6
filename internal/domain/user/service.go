package user

import "context"

// Resolver maps any identifier a client sends onto a single user.
type Resolver interface {
	Resolve(ctx context.Context, identity string) (User, error)
}

type UserService interface {
	Resolver
	GetUser(ctx context.Context, identity string) (UserResponse, error)
	RegisterFace(ctx context.Context, req RegisterFaceRequest) error
}
