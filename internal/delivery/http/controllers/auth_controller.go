package controllers

import (
	"log/slog"
	"net/http"

	h "eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
	"eventhub/internal/navigation"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator. Blank credentials are left to the service, which rejects them as invalid.
func (l LoginRequest) Validate() []string {
	var errs []string
	if _, ok := domain.ParseRole(l.Role); !ok {
		errs = append(errs, `role must be "participant" or "organiser"`)
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login.
type LoginResponse struct {
	Token      string             `json:"token"`
	TokenType  string             `json:"token_type"`
	User       *domain.User       `json:"user"`
	Navigation navigation.Context `json:"navigation"`
}

// RegisterParticipantRequest is the request body for POST /auth/register/participant.
type RegisterParticipantRequest struct {
	Name      string   `json:"name"`
	College   string   `json:"college"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Email     string   `json:"email"`
	Interests []string `json:"interests"`
}

// RegisterOrganiserRequest is the request body for POST /auth/register/organiser. The club name becomes the username.
type RegisterOrganiserRequest struct {
	College        string `json:"college"`
	ClubName       string `json:"club_name"`
	Description    string `json:"description"`
	ProfilePicture string `json:"profile_picture"`
	Password       string `json:"password"`
	Email          string `json:"email"`
}

// RegisterResponse is the response body for both registration endpoints. Profile is set for organisers only.
type RegisterResponse struct {
	User       *domain.User             `json:"user"`
	Profile    *domain.OrganiserProfile `json:"profile,omitempty"`
	Navigation navigation.Context       `json:"navigation"`
}

// LogoutResponse is the response body for POST /auth/logout.
type LogoutResponse struct {
	Navigation navigation.Context `json:"navigation"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with role, username and password. Any mismatch, including a wrong role, is reported as invalid credentials. Returns a JWT and the dashboard navigation context.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, user and navigation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)
	token, user, err := c.Service.Login(r.Context(), req.Username, req.Password, role)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:      token,
		TokenType:  "Bearer",
		User:       user,
		Navigation: navigation.Start().LoggedIn(user.Username, user.Role),
	})
}

// RegisterParticipant godoc
// @Summary Register a participant
// @Description Create a participant account. Name, college, username and password are required; interests must come from GET /topics.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterParticipantRequest true "Participant registration"
// @Success 201 {object} helpers.APIResponse "data contains the user and the login navigation context"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (username taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/register/participant [post]
func (c *AuthController) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req RegisterParticipantRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.RegisterParticipant(r.Context(), domain.ParticipantRegistration{
		Name:      req.Name,
		College:   req.College,
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Interests: req.Interests,
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{
		User:       user,
		Navigation: navigation.Start().OpenRegister().BackToLogin(),
	})
}

// RegisterOrganiser godoc
// @Summary Register an organiser
// @Description Create an organiser account and profile in one step. College, club name, description and password are required. profile_picture is a reference returned by POST /uploads/profile_pics.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterOrganiserRequest true "Organiser registration"
// @Success 201 {object} helpers.APIResponse "data contains the user, profile and the login navigation context"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (club name taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/register/organiser [post]
func (c *AuthController) RegisterOrganiser(w http.ResponseWriter, r *http.Request) {
	var req RegisterOrganiserRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, profile, err := c.Service.RegisterOrganiser(r.Context(), domain.OrganiserRegistration{
		College:        req.College,
		ClubName:       req.ClubName,
		Description:    req.Description,
		ProfilePicture: req.ProfilePicture,
		Password:       req.Password,
		Email:          req.Email,
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{
		User:       user,
		Profile:    profile,
		Navigation: navigation.Start().OpenRegister().BackToLogin(),
	})
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless, so the client discards its token. Returns the logged-out navigation context.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains navigation"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, LogoutResponse{Navigation: navigation.Start().Logout()})
}
