package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/auth"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
	"github.com/fivemlab/commute-expense/internal/report"
)

// Export format identifiers.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportFile is a rendered export offered for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders approved submissions for download.
type ExportService interface {
	ExportApproved(ctx context.Context, session auth.Session, startDate, endDate, format string) (*ExportFile, error)
}

type exportServiceImpl struct {
	submissionRepo port.SubmissionRepository
	logger         Logger
}

// NewExportService creates a new ExportService.
func NewExportService(submissionRepo port.SubmissionRepository, logger Logger) ExportService {
	return &exportServiceImpl{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// ExportApproved fetches approved submissions, optionally bounded by an
// inclusive created_at date range (start of day to end of day), ordered by
// creation ascending, and renders them as CSV or an XLSX workbook.
// An empty result is ErrNothingToExport: no file is produced.
func (s *exportServiceImpl) ExportApproved(ctx context.Context, session auth.Session, startDate, endDate, format string) (*ExportFile, error) {
	if !session.IsAdmin() {
		return nil, ErrAdminRequired
	}

	filter := port.SubmissionFilter{
		Status:    entity.StatusApproved,
		Ascending: true,
	}
	if startDate != "" {
		from, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: start date %q", ErrInvalidDateRange, startDate)
		}
		filter.CreatedFrom = &from
	}
	if endDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: end date %q", ErrInvalidDateRange, endDate)
		}
		to := parsed.Add(24*time.Hour - time.Second)
		filter.CreatedTo = &to
	}

	submissions, err := s.submissionRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to fetch approved submissions", "error", err)
		return nil, fmt.Errorf("fetch approved submissions: %w", err)
	}
	if len(submissions) == 0 {
		return nil, ErrNothingToExport
	}

	switch format {
	case FormatXLSX:
		data, err := report.BuildXLSX(submissions)
		if err != nil {
			s.logger.Error("Failed to render XLSX export", "error", err)
			return nil, fmt.Errorf("render xlsx: %w", err)
		}
		s.logger.Info("XLSX export rendered", "submissions", len(submissions))
		return &ExportFile{
			Filename:    report.DefaultXLSXFilename,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case FormatCSV, "":
		s.logger.Info("CSV export rendered", "submissions", len(submissions))
		return &ExportFile{
			Filename:    report.DefaultCSVFilename,
			ContentType: "text/csv; charset=utf-8",
			Data:        report.BuildCSV(submissions),
		}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
