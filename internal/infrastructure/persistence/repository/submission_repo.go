package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// SubmissionRepository implements port.SubmissionRepository
type SubmissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) port.SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a submission. The expense lines are stored as a JSON
// array in a single column.
func (r *SubmissionRepository) Create(ctx context.Context, submission *entity.Submission) error {
	lines, err := json.Marshal(submission.Lines)
	if err != nil {
		return fmt.Errorf("marshal expense lines: %w", err)
	}

	query := `
		INSERT INTO submissions (id, owner_id, status, lines, approved_at, rejected_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.getExecutor(ctx).ExecContext(ctx, query,
		submission.ID,
		submission.OwnerID,
		submission.Status,
		string(lines),
		submission.ApprovedAt,
		submission.RejectedAt,
		submission.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create submission", zap.Error(err))
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

const submissionColumns = `
	s.id, s.owner_id, s.status, s.lines, s.approved_at, s.rejected_at, s.created_at,
	p.name, u.email
`

// GetByID retrieves a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.owner_id
		LEFT JOIN profiles p ON p.user_id = s.owner_id
		WHERE s.id = ?
	`

	submission, err := scanSubmission(r.getExecutor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get submission by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return submission, nil
}

// List retrieves submissions matching the filter, joined with the owner's
// profile. Default order is newest first; filter.Ascending flips it for
// exports.
func (r *SubmissionRepository) List(ctx context.Context, filter port.SubmissionFilter) ([]entity.Submission, error) {
	var conditions []string
	var args []interface{}

	if filter.OwnerID != "" {
		conditions = append(conditions, "s.owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "s.status = ?")
		args = append(args, filter.Status)
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, "s.created_at >= ?")
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, "s.created_at <= ?")
		args = append(args, *filter.CreatedTo)
	}

	query := `
		SELECT ` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.owner_id
		LEFT JOIN profiles p ON p.user_id = s.owner_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if filter.Ascending {
		query += " ORDER BY s.created_at ASC"
	} else {
		query += " ORDER BY s.created_at DESC"
	}

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list submissions", zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []entity.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, *submission)
	}

	return submissions, rows.Err()
}

// UpdateStatus sets the status and both decision timestamps in one
// statement, so the timestamps can never disagree with the status.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id, status string, approvedAt, rejectedAt *time.Time) error {
	query := `
		UPDATE submissions
		SET status = ?, approved_at = ?, rejected_at = ?
		WHERE id = ?
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, status, approvedAt, rejectedAt, id)
	if err != nil {
		r.logger.Error("Failed to update submission status", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("submission %s not found", id)
	}

	return nil
}

// Delete removes a submission
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.getExecutor(ctx).ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete submission", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	return nil
}

// scanner covers *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row scanner) (*entity.Submission, error) {
	var submission entity.Submission
	var lines string
	var approvedAt, rejectedAt sql.NullTime
	var name sql.NullString
	var email string

	err := row.Scan(
		&submission.ID,
		&submission.OwnerID,
		&submission.Status,
		&lines,
		&approvedAt,
		&rejectedAt,
		&submission.CreatedAt,
		&name,
		&email,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(lines), &submission.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal expense lines: %w", err)
	}
	if approvedAt.Valid {
		submission.ApprovedAt = &approvedAt.Time
	}
	if rejectedAt.Valid {
		submission.RejectedAt = &rejectedAt.Time
	}
	submission.Applicant = &entity.Profile{
		UserID: submission.OwnerID,
		Email:  email,
		Name:   name.String,
	}

	return &submission, nil
}

// getExecutor returns appropriate executor based on context
func (r *SubmissionRepository) getExecutor(ctx context.Context) executor {
	if tx, ok := ctx.Value(contextKey("tx")).(*sql.Tx); ok {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.SubmissionRepository = (*SubmissionRepository)(nil)
