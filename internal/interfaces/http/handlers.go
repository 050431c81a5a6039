package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fivemlab/commute-expense/internal/application/service"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
	"github.com/fivemlab/commute-expense/internal/expense"
	"github.com/fivemlab/commute-expense/internal/report"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	accountService    service.AccountService
	submissionService service.SubmissionService
	approvalService   service.ApprovalService
	exportService     service.ExportService
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	accountService service.AccountService,
	submissionService service.SubmissionService,
	approvalService service.ApprovalService,
	exportService service.ExportService,
	logger Logger,
) *Handlers {
	return &Handlers{
		accountService:    accountService,
		submissionService: submissionService,
		approvalService:   approvalService,
		exportService:     exportService,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CredentialsRequest carries sign-up and sign-in payloads
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// SignInResponse carries the session token with the account
type SignInResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// SaveProfileRequest carries the display name update
type SaveProfileRequest struct {
	Name string `json:"name"`
}

// CreateSubmissionRequest carries the draft rows being submitted
type CreateSubmissionRequest struct {
	Lines []entity.ExpenseLine `json:"lines"`
}

// SubmissionResponse represents a submission in API responses
type SubmissionResponse struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	StatusLabel   string               `json:"status_label"`
	ApplicantName string               `json:"applicant_name"`
	Lines         []entity.ExpenseLine `json:"lines"`
	TotalAmount   int64                `json:"total_amount"`
	ApprovedAt    *string              `json:"approved_at,omitempty"`
	RejectedAt    *string              `json:"rejected_at,omitempty"`
	CreatedAt     string               `json:"created_at"`
}

// UpdateStatusRequest carries the target status for a submission
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DeleteSubmissionRequest carries both delete confirmation steps
type DeleteSubmissionRequest struct {
	Confirmed bool   `json:"confirmed"`
	Phrase    string `json:"phrase"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// SignUp handles POST /api/auth/signup
func (h *Handlers) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "email and password are required",
		})
		return
	}

	user, err := h.accountService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    toUserResponse(user),
	})
}

// SignIn handles POST /api/auth/signin
func (h *Handlers) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "email and password are required",
		})
		return
	}

	token, user, err := h.accountService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: SignInResponse{
			Token: token,
			User:  toUserResponse(user),
		},
	})
}

// GetProfile handles GET /api/profile
func (h *Handlers) GetProfile(c *gin.Context) {
	profile, err := h.accountService.GetProfile(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: ProfileResponse{
			UserID: profile.UserID,
			Email:  profile.Email,
			Name:   profile.Name,
		},
	})
}

// SaveProfile handles PUT /api/profile
func (h *Handlers) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.accountService.SaveName(c.Request.Context(), sessionFrom(c), req.Name); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// CreateSubmission handles POST /api/submissions
func (h *Handlers) CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), sessionFrom(c), req.Lines)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    toSubmissionResponse(submission),
	})
}

// ListSubmissions handles GET /api/submissions
func (h *Handlers) ListSubmissions(c *gin.Context) {
	submissions, err := h.submissionService.ListOwn(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSubmissionResponses(submissions),
	})
}

// GroupedResponse nests submissions by year then zero-padded month, with
// the keys sorted newest first for direct rendering.
type GroupedResponse struct {
	Years  []string                                   `json:"years"`
	Months map[string][]string                        `json:"months"`
	Groups map[string]map[string][]SubmissionResponse `json:"groups"`
}

// ListSubmissionsGrouped handles GET /api/submissions/grouped
func (h *Handlers) ListSubmissionsGrouped(c *gin.Context) {
	submissions, err := h.submissionService.ListOwn(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	grouped := report.GroupByYearMonth(submissions)
	resp := GroupedResponse{
		Years:  grouped.SortedYearsDesc(),
		Months: make(map[string][]string),
		Groups: make(map[string]map[string][]SubmissionResponse),
	}
	for _, year := range resp.Years {
		months := grouped.SortedMonthsDesc(year)
		resp.Months[year] = months
		resp.Groups[year] = make(map[string][]SubmissionResponse)
		for _, month := range months {
			resp.Groups[year][month] = toSubmissionResponses(grouped[year][month])
		}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    resp,
	})
}

// ListPending handles GET /api/admin/pending
func (h *Handlers) ListPending(c *gin.Context) {
	submissions, err := h.approvalService.ListPending(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSubmissionResponses(submissions),
	})
}

// ListAllSubmissions handles GET /api/admin/submissions
func (h *Handlers) ListAllSubmissions(c *gin.Context) {
	submissions, err := h.approvalService.ListAll(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSubmissionResponses(submissions),
	})
}

// UpdateStatus handles PUT /api/admin/submissions/:id/status
func (h *Handlers) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "status is required",
		})
		return
	}

	if err := h.approvalService.SetStatus(c.Request.Context(), sessionFrom(c), c.Param("id"), req.Status); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// DeleteSubmission handles DELETE /api/admin/submissions/:id
func (h *Handlers) DeleteSubmission(c *gin.Context) {
	var req DeleteSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	err := h.approvalService.Delete(c.Request.Context(), sessionFrom(c), c.Param("id"), req.Confirmed, req.Phrase)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// ExportApproved handles GET /api/admin/export
func (h *Handlers) ExportApproved(c *gin.Context) {
	file, err := h.exportService.ExportApproved(
		c.Request.Context(),
		sessionFrom(c),
		c.Query("start"),
		c.Query("end"),
		c.Query("format"),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// respondError maps service errors to HTTP status codes.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case expense.IsValidationError(err):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrAdminRequired):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, service.ErrSubmissionNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrNothingToExport):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrDeleteNotConfirmed), errors.Is(err, service.ErrInvalidDateRange):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
		message = err.Error()
	default:
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}

// toUserResponse converts domain entity to API response
func toUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
}

// toSubmissionResponse converts domain entity to API response
func toSubmissionResponse(submission *entity.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:            submission.ID,
		Status:        submission.Status,
		StatusLabel:   entity.StatusLabel(submission.Status),
		ApplicantName: submission.ApplicantName(),
		Lines:         submission.Lines,
		TotalAmount:   submission.TotalAmount(),
		CreatedAt:     submission.CreatedAt.Format(time.RFC3339),
	}

	if submission.ApprovedAt != nil {
		approvedAt := submission.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	if submission.RejectedAt != nil {
		rejectedAt := submission.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &rejectedAt
	}

	return resp
}

func toSubmissionResponses(submissions []entity.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, toSubmissionResponse(&submissions[i]))
	}
	return responses
}
