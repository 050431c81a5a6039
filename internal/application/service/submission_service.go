package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/auth"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
	"github.com/fivemlab/commute-expense/internal/expense"
)

// SubmissionService validates and persists expense submissions.
type SubmissionService interface {
	Submit(ctx context.Context, session auth.Session, lines []entity.ExpenseLine) (*entity.Submission, error)
	ListOwn(ctx context.Context, session auth.Session) ([]entity.Submission, error)
}

type submissionServiceImpl struct {
	submissionRepo port.SubmissionRepository
	profileRepo    port.ProfileRepository
	notifier       port.Notifier
	logger         Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	submissionRepo port.SubmissionRepository,
	profileRepo port.ProfileRepository,
	notifier port.Notifier,
	logger Logger,
) SubmissionService {
	return &submissionServiceImpl{
		submissionRepo: submissionRepo,
		profileRepo:    profileRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// Submit filters and validates the draft rows, persists one pending
// submission, then fires the channel notification. Validation failures
// and persistence errors leave nothing persisted; a notification failure
// is logged and swallowed so the submission still succeeds.
func (s *submissionServiceImpl) Submit(ctx context.Context, session auth.Session, lines []entity.ExpenseLine) (*entity.Submission, error) {
	validated, err := expense.ValidateForSubmission(lines)
	if err != nil {
		return nil, err
	}

	submission := &entity.Submission{
		ID:        uuid.NewString(),
		OwnerID:   session.UserID,
		Status:    entity.StatusPending,
		Lines:     validated,
		CreatedAt: time.Now(),
		Applicant: s.resolveApplicant(ctx, session),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		s.logger.Error("Failed to create submission", "error", err, "owner_id", session.UserID)
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.logger.Info("Submission created",
		"id", submission.ID,
		"owner_id", session.UserID,
		"lines", len(validated),
		"total", submission.TotalAmount(),
	)

	s.notifyBestEffort(ctx, submission)

	return submission, nil
}

// ListOwn returns the caller's submission history, newest first. Admins
// see everyone's history.
func (s *submissionServiceImpl) ListOwn(ctx context.Context, session auth.Session) ([]entity.Submission, error) {
	filter := port.SubmissionFilter{}
	if !session.IsAdmin() {
		filter.OwnerID = session.UserID
	}

	submissions, err := s.submissionRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list submissions", "error", err, "owner_id", session.UserID)
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// notifyBestEffort fires the submission notice. Failures never propagate.
func (s *submissionServiceImpl) notifyBestEffort(ctx context.Context, submission *entity.Submission) {
	if s.notifier == nil {
		return
	}

	notice := port.SubmissionNotice{
		ApplicantName: submission.ApplicantName(),
		Date:          time.Now().Format("2006/01/02"),
		TotalAmount:   submission.TotalAmount(),
		ItemCount:     len(submission.Lines),
		Lines:         submission.Lines,
	}

	if err := s.notifier.NotifySubmission(ctx, notice); err != nil {
		s.logger.Error("Failed to send submission notification", "error", err, "submission_id", submission.ID)
		return
	}

	s.logger.Info("Submission notification sent", "submission_id", submission.ID)
}

// resolveApplicant attaches the applicant identity so responses and
// notifications show the display name, falling back to the session email
// when no name is saved.
func (s *submissionServiceImpl) resolveApplicant(ctx context.Context, session auth.Session) *entity.Profile {
	applicant := &entity.Profile{UserID: session.UserID, Email: session.Email}

	profile, err := s.profileRepo.GetByUserID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("Failed to fetch profile", "error", err, "user_id", session.UserID)
	} else if profile != nil {
		applicant.Name = profile.Name
	}
	return applicant
}
