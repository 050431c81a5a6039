package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/auth"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

func adminSession() auth.Session {
	return auth.Session{UserID: "admin-1", Email: "keiri@example.com", Role: entity.RoleAdmin}
}

func TestApprovalService_AdminRequired(t *testing.T) {
	svc := NewApprovalService(&mockSubmissionRepo{}, &mockLogger{})
	employee := auth.Session{UserID: "user-1", Email: "taro@example.com"}
	ctx := context.Background()

	if _, err := svc.ListPending(ctx, employee); !errors.Is(err, ErrAdminRequired) {
		t.Errorf("ListPending() error = %v, want ErrAdminRequired", err)
	}
	if _, err := svc.ListAll(ctx, employee); !errors.Is(err, ErrAdminRequired) {
		t.Errorf("ListAll() error = %v, want ErrAdminRequired", err)
	}
	if err := svc.SetStatus(ctx, employee, "s1", entity.StatusApproved); !errors.Is(err, ErrAdminRequired) {
		t.Errorf("SetStatus() error = %v, want ErrAdminRequired", err)
	}
	if err := svc.Delete(ctx, employee, "s1", true, DeleteConfirmationPhrase); !errors.Is(err, ErrAdminRequired) {
		t.Errorf("Delete() error = %v, want ErrAdminRequired", err)
	}
}

func TestApprovalService_SetStatus(t *testing.T) {
	rejectedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		current        *entity.Submission
		status         string
		wantApprovedAt bool
		wantRejectedAt bool
	}{
		{
			name:           "approve a pending submission",
			current:        &entity.Submission{ID: "s1", Status: entity.StatusPending},
			status:         entity.StatusApproved,
			wantApprovedAt: true,
		},
		{
			name:           "approve a rejected submission clears rejected_at",
			current:        &entity.Submission{ID: "s1", Status: entity.StatusRejected, RejectedAt: &rejectedAt},
			status:         entity.StatusApproved,
			wantApprovedAt: true,
		},
		{
			name:           "reject clears approved_at",
			current:        &entity.Submission{ID: "s1", Status: entity.StatusApproved},
			status:         entity.StatusRejected,
			wantRejectedAt: true,
		},
		{
			name:    "back to pending clears both",
			current: &entity.Submission{ID: "s1", Status: entity.StatusApproved},
			status:  entity.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotApproved, gotRejected *time.Time
			repo := &mockSubmissionRepo{
				getByIDFunc: func(ctx context.Context, id string) (*entity.Submission, error) {
					return tt.current, nil
				},
				updateStatusFunc: func(ctx context.Context, id, status string, approvedAt, rejectedAt *time.Time) error {
					gotApproved = approvedAt
					gotRejected = rejectedAt
					return nil
				},
			}
			svc := NewApprovalService(repo, &mockLogger{})

			if err := svc.SetStatus(context.Background(), adminSession(), "s1", tt.status); err != nil {
				t.Fatalf("SetStatus() error = %v", err)
			}

			if (gotApproved != nil) != tt.wantApprovedAt {
				t.Errorf("approved_at set = %v, want %v", gotApproved != nil, tt.wantApprovedAt)
			}
			if (gotRejected != nil) != tt.wantRejectedAt {
				t.Errorf("rejected_at set = %v, want %v", gotRejected != nil, tt.wantRejectedAt)
			}
			if gotApproved != nil && gotRejected != nil {
				t.Error("both timestamps set, they are mutually exclusive")
			}
		})
	}
}

func TestApprovalService_SetStatus_InvalidStatus(t *testing.T) {
	repo := &mockSubmissionRepo{}
	svc := NewApprovalService(repo, &mockLogger{})

	err := svc.SetStatus(context.Background(), adminSession(), "s1", "archived")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("SetStatus() error = %v, want ErrInvalidStatus", err)
	}
	if repo.updateStatusCalls != 0 {
		t.Error("SetStatus() mutated on invalid status")
	}
}

func TestApprovalService_SetStatus_NotFound(t *testing.T) {
	repo := &mockSubmissionRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Submission, error) {
			return nil, nil
		},
	}
	svc := NewApprovalService(repo, &mockLogger{})

	err := svc.SetStatus(context.Background(), adminSession(), "missing", entity.StatusApproved)
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("SetStatus() error = %v, want ErrSubmissionNotFound", err)
	}
}

func TestApprovalService_Delete_Confirmations(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
		phrase    string
		wantErr   error
		wantCalls int
	}{
		{"both confirmations pass", true, "削除", nil, 1},
		{"not confirmed", false, "削除", ErrDeleteNotConfirmed, 0},
		{"wrong phrase", true, "delete", ErrDeleteNotConfirmed, 0},
		{"empty phrase", true, "", ErrDeleteNotConfirmed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSubmissionRepo{}
			svc := NewApprovalService(repo, &mockLogger{})

			err := svc.Delete(context.Background(), adminSession(), "s1", tt.confirmed, tt.phrase)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete() error = %v, want %v", err, tt.wantErr)
			}
			if repo.deleteCalls != tt.wantCalls {
				t.Errorf("Delete() issued %d deletes, want %d", repo.deleteCalls, tt.wantCalls)
			}
		})
	}
}

func TestApprovalService_Delete_NotFound(t *testing.T) {
	repo := &mockSubmissionRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Submission, error) {
			return nil, nil
		},
	}
	svc := NewApprovalService(repo, &mockLogger{})

	err := svc.Delete(context.Background(), adminSession(), "missing", true, DeleteConfirmationPhrase)
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("Delete() error = %v, want ErrSubmissionNotFound", err)
	}
}

func TestApprovalService_ListPending_FiltersByStatus(t *testing.T) {
	var gotFilter port.SubmissionFilter
	repo := &mockSubmissionRepo{
		listFunc: func(ctx context.Context, filter port.SubmissionFilter) ([]entity.Submission, error) {
			gotFilter = filter
			return []entity.Submission{{ID: "s1", Status: entity.StatusPending}}, nil
		},
	}
	svc := NewApprovalService(repo, &mockLogger{})

	subs, err := svc.ListPending(context.Background(), adminSession())
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("ListPending() returned %d, want 1", len(subs))
	}
	if gotFilter.Status != entity.StatusPending {
		t.Errorf("ListPending() filter status = %q, want pending", gotFilter.Status)
	}
}
