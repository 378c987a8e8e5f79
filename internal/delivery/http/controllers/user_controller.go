package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
	"eventhub/internal/navigation"
)

// MeResponse is the response body for GET /users/me.
type MeResponse struct {
	User       *domain.User       `json:"user"`
	Navigation navigation.Context `json:"navigation"`
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

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user and their dashboard navigation context.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains user and navigation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetByUsername(r.Context(), id.Username)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MeResponse{User: user, Navigation: navigation.For(user.Username, user.Role)})
}

// GetOrganiser godoc
// @Summary Get an organiser profile
// @Description Public branding of a club: college, description (raw and rendered) and profile picture.
// @Tags users
// @Produce json
// @Param username path string true "Organiser username (club name)"
// @Success 200 {object} helpers.APIResponse "data contains the organiser profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organisers/{username} [get]
func (c *UserController) GetOrganiser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PathValue("username"))
	if username == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing username")
		return
	}
	profile, err := c.Service.GetOrganiserProfile(r.Context(), username)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}
