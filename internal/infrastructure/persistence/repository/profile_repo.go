package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// ProfileRepository implements port.ProfileRepository
type ProfileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, logger *zap.Logger) port.ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID retrieves a profile by the owning user's ID
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	query := `
		SELECT user_id, email, name
		FROM profiles
		WHERE user_id = ?
	`

	var profile entity.Profile
	err := r.getExecutor(ctx).QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.Name,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get profile", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpdateName stores the display name, creating the profile row if the
// account predates profile creation.
func (r *ProfileRepository) UpdateName(ctx context.Context, userID, name string) error {
	query := `
		INSERT INTO profiles (user_id, email, name)
		VALUES (?, (SELECT email FROM users WHERE id = ?), ?)
		ON CONFLICT(user_id) DO UPDATE SET name = excluded.name
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, userID, userID, name)
	if err != nil {
		r.logger.Error("Failed to update profile name", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to update profile name: %w", err)
	}

	return nil
}

// getExecutor returns appropriate executor based on context
func (r *ProfileRepository) getExecutor(ctx context.Context) executor {
	if tx, ok := ctx.Value(contextKey("tx")).(*sql.Tx); ok {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.ProfileRepository = (*ProfileRepository)(nil)
