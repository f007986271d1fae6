package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/validator"
)

// strategy is one way of matching an identity to a user.
type strategy struct {
	name    string
	applies func(identity string) bool
	lookup  func(ctx context.Context, identity string) (user.User, error)
}

type UserServiceImpl struct {
	user.UserRepository
	descriptorLength int
	strategies       []strategy
}

// NewUserService creates the user service. descriptorLength pins the face
// descriptor size accepted on registration; zero accepts any size.
func NewUserService(userRepository user.UserRepository, descriptorLength int) user.UserService {
	s := &UserServiceImpl{
		UserRepository:   userRepository,
		descriptorLength: descriptorLength,
	}

	// Order matters: first hit wins.
	s.strategies = []strategy{
		{name: "user_id", applies: always, lookup: s.GetByUserID},
		{name: "legacy_id", applies: always, lookup: s.GetByLegacyID},
		{name: "id", applies: always, lookup: s.GetByID},
		{name: "id_normalized", applies: isMixedCaseObjectID, lookup: func(ctx context.Context, identity string) (user.User, error) {
			return s.GetByID(ctx, strings.ToLower(identity))
		}},
	}

	return s
}

func always(string) bool { return true }

// isMixedCaseObjectID is true for a 24-hex identity that the verbatim id lookup could have missed.
func isMixedCaseObjectID(identity string) bool {
	return validator.IsValidObjectID(identity) && strings.ToLower(identity) != identity
}

// Resolve implements user.Resolver.
func (s *UserServiceImpl) Resolve(ctx context.Context, identity string) (user.User, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return user.User{}, user.ErrUserNotFound
	}

	for _, st := range s.strategies {
		if !st.applies(identity) {
			continue
		}

		u, err := st.lookup(ctx, identity)
		if err == nil {
			slog.Debug("User resolved", "identity", identity, "strategy", st.name, "user_id", u.ID)
			return u, nil
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, fmt.Errorf("failed to resolve user by %s: %w", st.name, err)
		}
	}

	return user.User{}, user.ErrUserNotFound
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, identity string) (user.UserResponse, error) {
	u, err := s.Resolve(ctx, identity)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// RegisterFace implements user.UserService. The stored descriptor is replaced, never merged.
func (s *UserServiceImpl) RegisterFace(ctx context.Context, req user.RegisterFaceRequest) error {
	if err := req.Validate(s.descriptorLength); err != nil {
		return err
	}

	u, err := s.Resolve(ctx, req.UserID)
	if err != nil {
		return err
	}

	descriptor := make([]float64, len(req.Descriptor))
	copy(descriptor, req.Descriptor)

	if err := s.UpdateFaceDescriptor(ctx, u.ID, descriptor); err != nil {
		return fmt.Errorf("failed to register face: %w", err)
	}

	slog.Info("Face registered", "user_id", u.ID, "length", len(descriptor))
	return nil
}
