package port

import (
	"context"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// SubmissionNotice is the payload fired at the messaging channel when a
// submission is created.
type SubmissionNotice struct {
	ApplicantName string
	Date          string
	TotalAmount   int64
	ItemCount     int
	Lines         []entity.ExpenseLine
}

// Notifier delivers submission notices to the configured channel. Delivery
// is best-effort: callers log failures and move on, they never roll back
// the submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, notice SubmissionNotice) error
}
