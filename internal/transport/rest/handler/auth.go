package handler

import (
	"net/http"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/service"
	"github.com/saran8796/survey-application/internal/transport/rest/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	Responder
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(rs Responder, authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{Responder: rs, authSvc: authSvc}
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.RegisterRequest true "Account"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authSvc.Register(r.Context(), req)
	if err != nil {
		h.fail(w, "User", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Login handles POST /api/auth/login
// @Summary Log in with email or username
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.LoginRequest true "Credentials"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		h.fail(w, "User", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// User handles GET /api/auth/user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} model.User
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/user [get]
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no token, authorization denied")
		return
	}

	user, err := h.authSvc.CurrentUser(r.Context(), userID)
	if err != nil {
		h.fail(w, "User", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
