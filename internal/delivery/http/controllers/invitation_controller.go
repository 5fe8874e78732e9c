package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"familyagenda/internal/delivery/http/helpers"
	"familyagenda/internal/delivery/http/middleware"
	"familyagenda/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one
// dot in the domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *InvitationController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status := helpers.WriteDomainError(w, err); status == http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// IssueInvitationsRequest is the request body for POST /events/{eventID}/invitations.
// Emails is a string of addresses separated by commas or spaces.
type IssueInvitationsRequest struct {
	Emails string `json:"emails"`
}

// Validate implements Validator.
func (s IssueInvitationsRequest) Validate() []string {
	if strings.TrimSpace(s.Emails) == "" {
		return []string{"emails is required"}
	}
	return nil
}

// parseEmailsFromString splits the input by commas and spaces, trims,
// lowercases, deduplicates, and returns only strings that match emailRegex.
// May return an empty slice.
func parseEmailsFromString(raw string) []string {
	raw = strings.ReplaceAll(raw, ",", " ")
	parts := strings.Fields(raw)
	seen := make(map[string]struct{})
	var out []string
	for _, p := range parts {
		email := strings.TrimSpace(strings.ToLower(p))
		if email == "" || !emailRegex.MatchString(email) {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}

// IssueInvitationsResponse is the data payload for POST /events/{eventID}/invitations (200).
type IssueInvitationsResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// IssueInvitationsSuccessResponse is the success response envelope for POST /events/{eventID}/invitations (200).
type IssueInvitationsSuccessResponse struct {
	Data  IssueInvitationsResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// IssueInvitations godoc
// @Summary Invite users to an event
// @Description Issues invitations to registered users by email and sends each an invitation email. Body contains a string of emails separated by commas or spaces. Only the event owner can invite. Unknown addresses, duplicates, and failed sends are reported in the failed list.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body IssueInvitationsRequest true "Emails string (comma or space separated)"
// @Success 200 {object} controllers.IssueInvitationsSuccessResponse "data contains sent count and failed list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (empty or no valid emails)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *InvitationController) IssueInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req IssueInvitationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	emails := parseEmailsFromString(req.Emails)
	if len(emails) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "no valid emails found")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sent, failed, err := c.Service.IssueInvitations(r.Context(), eventID, userID, emails)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, IssueInvitationsResponse{Sent: sent, Failed: failed})
}

// RespondInvitationSuccessResponse is the success response envelope for the
// accept and decline endpoints (200).
type RespondInvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// AcceptInvitation godoc
// @Summary Accept an invitation
// @Description Transitions an issued invitation to accepted. Only the invited user can accept, and only while the invitation is still open.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 200 {object} controllers.RespondInvitationSuccessResponse "data contains the updated invitation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the invitee)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already responded)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{invitationID}/accept [post]
func (c *InvitationController) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, c.Service.AcceptInvitation)
}

// DeclineInvitation godoc
// @Summary Decline an invitation
// @Description Transitions an issued invitation to declined. Only the invited user can decline, and only while the invitation is still open.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 200 {object} controllers.RespondInvitationSuccessResponse "data contains the updated invitation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the invitee)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already responded)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{invitationID}/decline [post]
func (c *InvitationController) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, c.Service.DeclineInvitation)
}

func (c *InvitationController) respond(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, invitationID, userID string) (*domain.Invitation, error)) {
	invitationID := r.PathValue("invitationID")
	if invitationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invitationID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inv, err := op(r.Context(), invitationID, userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// ListInvitationsResponse is the data payload for the invitation list endpoints (200).
type ListInvitationsResponse struct {
	Items      []*domain.Invitation   `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListInvitationsSuccessResponse is the success response envelope for the invitation list endpoints (200).
type ListInvitationsSuccessResponse struct {
	Data  ListInvitationsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListEventInvitations godoc
// @Summary List invitations for an event
// @Description Returns a paginated list of invitations issued for the event. Only the event owner can list. Optional search filters by email substring (case-insensitive).
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param search query string false "Filter emails containing this string (case-insensitive)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListInvitationsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [get]
func (c *InvitationController) ListEventInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListEventInvitations(r.Context(), eventID, userID, search, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListInvitationsResponse{Items: list, Pagination: meta})
}

// ListMyInvitations godoc
// @Summary List invitations for the current user
// @Description Returns a paginated list of the authenticated user's invitations. Optional status filter: issued, accepted, or declined.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (issued, accepted, declined)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListInvitationsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown status)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/me [get]
func (c *InvitationController) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListMyInvitations(r.Context(), userID, status, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListInvitationsResponse{Items: list, Pagination: meta})
}
