package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, user_id, legacy_id, username, email, role, face_descriptor, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByUserID implements user.UserRepository.
func (r *userRepositoryImpl) GetByUserID(ctx context.Context, userID string) (user.User, error) {
	return r.getBy(ctx, "user_id", userID)
}

// GetByLegacyID implements user.UserRepository.
func (r *userRepositoryImpl) GetByLegacyID(ctx context.Context, legacyID string) (user.User, error) {
	return r.getBy(ctx, "legacy_id", legacyID)
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getBy(ctx, "id", id)
}

// column is always one of the constants above, never user input.
func (r *userRepositoryImpl) getBy(ctx context.Context, column, value string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	u, err := scanUser(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		newUser.ID = utils.NewObjectID()
	}
	if newUser.Role == "" {
		newUser.Role = user.RoleEmployee
	}

	query := `
		INSERT INTO users (id, user_id, legacy_id, username, email, role, face_descriptor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.ID,
		newUser.UserID,
		newUser.LegacyID,
		newUser.Username,
		newUser.Email,
		newUser.Role,
		nullableDescriptor(newUser.FaceDescriptor),
	))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// UpdateFaceDescriptor implements user.UserRepository.
func (r *userRepositoryImpl) UpdateFaceDescriptor(ctx context.Context, id string, descriptor []float64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE users
		SET face_descriptor = $1, updated_at = NOW()
		WHERE id = $2
	`, nullableDescriptor(descriptor), id)
	if err != nil {
		return fmt.Errorf("failed to update face descriptor: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.UserID,
		&u.LegacyID,
		&u.Username,
		&u.Email,
		&u.Role,
		&u.FaceDescriptor,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// nullableDescriptor stores an empty descriptor as NULL (not registered).
func nullableDescriptor(d []float64) []float64 {
	if len(d) == 0 {
		return nil
	}
	return d
}
