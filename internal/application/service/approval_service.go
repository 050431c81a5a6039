package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/auth"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// ApprovalService is the administrator side of the workflow: status
// transitions and deletion. Every operation checks the admin capability at
// this boundary; handlers only route.
type ApprovalService interface {
	ListPending(ctx context.Context, session auth.Session) ([]entity.Submission, error)
	ListAll(ctx context.Context, session auth.Session) ([]entity.Submission, error)
	SetStatus(ctx context.Context, session auth.Session, id, status string) error
	Delete(ctx context.Context, session auth.Session, id string, confirmed bool, phrase string) error
}

type approvalServiceImpl struct {
	submissionRepo port.SubmissionRepository
	logger         Logger
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(submissionRepo port.SubmissionRepository, logger Logger) ApprovalService {
	return &approvalServiceImpl{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// ListPending returns submissions awaiting a decision, newest first.
func (s *approvalServiceImpl) ListPending(ctx context.Context, session auth.Session) ([]entity.Submission, error) {
	if !session.IsAdmin() {
		return nil, ErrAdminRequired
	}

	submissions, err := s.submissionRepo.List(ctx, port.SubmissionFilter{Status: entity.StatusPending})
	if err != nil {
		s.logger.Error("Failed to list pending submissions", "error", err)
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}
	return submissions, nil
}

// ListAll returns every submission, newest first.
func (s *approvalServiceImpl) ListAll(ctx context.Context, session auth.Session) ([]entity.Submission, error) {
	if !session.IsAdmin() {
		return nil, ErrAdminRequired
	}

	submissions, err := s.submissionRepo.List(ctx, port.SubmissionFilter{})
	if err != nil {
		s.logger.Error("Failed to list submissions", "error", err)
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// SetStatus moves a submission to the given status. Approving stamps
// approved_at and clears rejected_at; rejecting does the mirror image;
// back to pending clears both. The two timestamps can never be set at
// once.
func (s *approvalServiceImpl) SetStatus(ctx context.Context, session auth.Session, id, status string) error {
	if !session.IsAdmin() {
		return ErrAdminRequired
	}
	if !entity.ValidStatus(status) {
		return ErrInvalidStatus
	}

	existing, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load submission", "error", err, "id", id)
		return fmt.Errorf("get submission: %w", err)
	}
	if existing == nil {
		return ErrSubmissionNotFound
	}

	var approvedAt, rejectedAt *time.Time
	now := time.Now()
	switch status {
	case entity.StatusApproved:
		approvedAt = &now
	case entity.StatusRejected:
		rejectedAt = &now
	}

	if err := s.submissionRepo.UpdateStatus(ctx, id, status, approvedAt, rejectedAt); err != nil {
		s.logger.Error("Failed to update status", "error", err, "id", id, "status", status)
		return fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("Status updated", "id", id, "status", status, "by", session.UserID)
	return nil
}

// Delete removes a submission after the operator completed both
// confirmation steps: the yes/no confirmation and typing the exact
// confirmation word. Any mismatch aborts with nothing mutated.
func (s *approvalServiceImpl) Delete(ctx context.Context, session auth.Session, id string, confirmed bool, phrase string) error {
	if !session.IsAdmin() {
		return ErrAdminRequired
	}
	if !confirmed || phrase != DeleteConfirmationPhrase {
		return ErrDeleteNotConfirmed
	}

	existing, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load submission", "error", err, "id", id)
		return fmt.Errorf("get submission: %w", err)
	}
	if existing == nil {
		return ErrSubmissionNotFound
	}

	if err := s.submissionRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete submission", "error", err, "id", id)
		return fmt.Errorf("delete submission: %w", err)
	}

	s.logger.Info("Submission deleted", "id", id, "by", session.UserID)
	return nil
}
