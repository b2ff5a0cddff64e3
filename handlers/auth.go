package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/pkg/ratelimit"
	"github.com/akinalp/grocery-planner/services"
)

// AuthHandler, /api/auth endpoint'leri.
type AuthHandler struct {
	authService    services.AuthService
	loginLimiter   *ratelimit.Limiter
	recoverLimiter *ratelimit.Limiter
}

// NewAuthHandler, constructor.
// Limiter'lar nil ise ilgili rate limiting devre dışıdır.
func NewAuthHandler(authService services.AuthService, loginLimiter, recoverLimiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		loginLimiter:   loginLimiter,
		recoverLimiter: recoverLimiter,
	}
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
// POST /api/auth/register
// Body: { "email": "...", "password": "..." }
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSONWithMessage(w, http.StatusCreated, session, "check your email to confirm your account")
}

// Login godoc
// POST /api/auth/login
//
// IP bazlı brute-force koruması: pencere içinde limit aşılırsa 429.
// Başarılı login sayacı sıfırlar.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if !h.allow(w, h.loginLimiter, ip, "too many login attempts") {
		return
	}

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, session)
}

// Refresh godoc
// POST /api/auth/refresh
// Body: { "refresh_token": "..." }
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RefreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	session, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, session)
}

// Logout godoc
// POST /api/auth/logout
// Body: { "refresh_token": "..." }
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSONWithMessage(w, http.StatusOK, nil, "logged out")
}

// Verify godoc
// POST /api/auth/verify
// Body: { "token_hash": "...", "type": "signup" | "recovery" }
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Verify(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, resp)
}

// Recover godoc
// POST /api/auth/recover
// Body: { "email": "..." }
//
// Email kayıtlı olsun olmasın aynı yanıt döner (enumeration koruması).
// Aynı adrese gönderim email bazlı rate limit ile sınırlanır.
func (h *AuthHandler) Recover(w http.ResponseWriter, r *http.Request) {
	var req models.RecoverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.allow(w, h.recoverLimiter, req.Email, "too many recovery requests") {
		return
	}

	if err := h.authService.Recover(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSONWithMessage(w, http.StatusOK, nil, "if the email exists, a recovery link has been sent")
}

// allow, limiter'ı kontrol eder; limit aşıldıysa 429 + Retry-After yazar.
func (h *AuthHandler) allow(w http.ResponseWriter, limiter *ratelimit.Limiter, key, what string) bool {
	if limiter == nil || limiter.Allow(key) {
		return true
	}

	retryAfter := limiter.RetryAfterSeconds(key)
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
		fmt.Sprintf("%s, please try again in %s", what, ratelimit.FormatRetryMessage(retryAfter)))
	return false
}
