package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunarbyte/tradevalues/internal/auth"
	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/identity"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/metrics"
)

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50,excludesall=\x00\n\r\t "`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

type RegisterResponse struct {
	User *domain.User `json:"user"`
	// VerificationToken is returned directly; there is no mail delivery
	VerificationToken string `json:"verification_token"`
}

// HandleRegister creates a new inactive account
// @Summary Register
// @Description Create an account; it must be verified before login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func HandleRegister(svc identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}

		user, token, err := svc.Register(r.Context(), req.Username, req.Email, req.Password, req.DisplayName)
		if err != nil {
			logger.FromContext(r.Context()).Error("Registration failed", "error", err, "username", req.Username)
			respondServiceError(w, err)
			return
		}

		metrics.UsersRegistered.Inc()
		respondJSON(w, http.StatusCreated, DataResponse{
			Message: "Account created. Verify it to log in.",
			Data:    RegisterResponse{User: user, VerificationToken: token},
		})
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=128"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// HandleLogin checks credentials and mints a session token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func HandleLogin(svc identity.Service, issuer *auth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		user, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			log.Warn("Login failed", "username", req.Username, "error", err)
			if errors.Is(err, domain.ErrAccountInactive) {
				metrics.LoginsTotal.WithLabelValues(metrics.OutcomeInactive).Inc()
			} else {
				metrics.LoginsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
			}
			respondServiceError(w, err)
			return
		}

		token, err := issuer.IssueToken(user)
		if err != nil {
			log.Error("Failed to issue token", "error", err, "user_id", user.ID)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		metrics.LoginsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		respondJSON(w, http.StatusOK, DataResponse{Data: LoginResponse{Token: token, User: user}})
	}
}

// HandleVerify spends a verification token and activates the account
// @Summary Verify account
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/auth/verify/{token} [get]
func HandleVerify(svc identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		user, err := svc.Verify(r.Context(), token)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		metrics.UsersVerified.Inc()
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Account verified. You can log in now.",
			Data:    user,
		})
	}
}

// ProfileResponse bundles the account with its profile
type ProfileResponse struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

// HandleGetProfile serves the authenticated user's own profile
// @Summary Own profile
// @Tags auth
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/profile [get]
func HandleGetProfile(svc identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgAuthRequiredError)
			return
		}

		profile, err := svc.GetProfile(r.Context(), user.ID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get profile", "error", err, "user_id", user.ID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: ProfileResponse{User: user, Profile: profile}})
	}
}

type RoleRequest struct {
	Role string `json:"role" validate:"required,max=50"`
}

// HandleGrantRole adds a user to a role (superuser only)
// @Summary Grant role
// @Tags admin
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body RoleRequest true "Role name"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/users/{username}/roles [post]
func HandleGrantRole(svc identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var req RoleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant role"); err != nil {
			return
		}

		if err := svc.GrantRole(r.Context(), username, req.Role); err != nil {
			logger.FromContext(r.Context()).Error("Failed to grant role", "error", err, "username", username, "role", req.Role)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Role granted"})
	}
}

// HandleRevokeRole removes a user from a role (superuser only)
// @Summary Revoke role
// @Tags admin
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body RoleRequest true "Role name"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/users/{username}/roles [delete]
func HandleRevokeRole(svc identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var req RoleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Revoke role"); err != nil {
			return
		}

		if err := svc.RevokeRole(r.Context(), username, req.Role); err != nil {
			logger.FromContext(r.Context()).Error("Failed to revoke role", "error", err, "username", username, "role", req.Role)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Role revoked"})
	}
}
