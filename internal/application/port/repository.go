package port

import (
	"context"
	"time"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// SubmissionFilter narrows a submission read. Zero values mean "no
// constraint". Reads always join the owner's profile so lists can show a
// display name.
type SubmissionFilter struct {
	OwnerID     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Ascending   bool
}

// SubmissionRepository persists submissions. Implementations return
// (nil, nil) when a lookup finds nothing.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]entity.Submission, error)
	UpdateStatus(ctx context.Context, id, status string, approvedAt, rejectedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

// ProfileRepository persists the per-user display name record.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateName(ctx context.Context, userID, name string) error
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
