package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"familyagenda/internal/delivery/http/helpers"
	"familyagenda/internal/delivery/http/middleware"
	"familyagenda/internal/domain"
)

// UpdateMeRequest is the request body for PATCH /users/me. Absent fields are
// left untouched.
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
}

// Validate implements Validator.
func (u UpdateMeRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Name == nil && u.LastName == nil {
		errs = append(errs, "at least one field must be provided")
	}
	return errs
}

// UserSuccessResponse is the success response envelope for the user endpoints.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *UserController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status := helpers.WriteDomainError(w, err); status == http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// GetMe godoc
// @Summary Get the authenticated user
// @Description Return the profile of the user identified by the bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Description Partially update name and last name. Absent fields are left untouched.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateMeRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	var req UpdateMeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.UpdateProfile(r.Context(), userID, req.Name, req.LastName)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
