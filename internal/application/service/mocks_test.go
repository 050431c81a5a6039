package service

import (
	"context"
	"time"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// Mock repositories
type mockSubmissionRepo struct {
	createFunc       func(ctx context.Context, submission *entity.Submission) error
	getByIDFunc      func(ctx context.Context, id string) (*entity.Submission, error)
	listFunc         func(ctx context.Context, filter port.SubmissionFilter) ([]entity.Submission, error)
	updateStatusFunc func(ctx context.Context, id, status string, approvedAt, rejectedAt *time.Time) error
	deleteFunc       func(ctx context.Context, id string) error

	createCalls       int
	updateStatusCalls int
	deleteCalls       int
}

func (m *mockSubmissionRepo) Create(ctx context.Context, submission *entity.Submission) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, submission)
	}
	return nil
}

func (m *mockSubmissionRepo) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Submission{ID: id, Status: entity.StatusPending}, nil
}

func (m *mockSubmissionRepo) List(ctx context.Context, filter port.SubmissionFilter) ([]entity.Submission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []entity.Submission{}, nil
}

func (m *mockSubmissionRepo) UpdateStatus(ctx context.Context, id, status string, approvedAt, rejectedAt *time.Time) error {
	m.updateStatusCalls++
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, approvedAt, rejectedAt)
	}
	return nil
}

func (m *mockSubmissionRepo) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockProfileRepo struct {
	getByUserIDFunc func(ctx context.Context, userID string) (*entity.Profile, error)
	updateNameFunc  func(ctx context.Context, userID, name string) error
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	if m.getByUserIDFunc != nil {
		return m.getByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) UpdateName(ctx context.Context, userID, name string) error {
	if m.updateNameFunc != nil {
		return m.updateNameFunc(ctx, userID, name)
	}
	return nil
}

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *entity.User) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, notice port.SubmissionNotice) error
	calls      int
	lastNotice port.SubmissionNotice
}

func (m *mockNotifier) NotifySubmission(ctx context.Context, notice port.SubmissionNotice) error {
	m.calls++
	m.lastNotice = notice
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, notice)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
