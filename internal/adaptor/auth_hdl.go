package adaptor

import (
	"net"
	"net/http"

	"cinelog/internal/dto/request"
	"cinelog/internal/usecase"
	"cinelog/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// RequestLoginCode handles POST /api/auth/email
func (h *AuthHandler) RequestLoginCode(w http.ResponseWriter, r *http.Request) {
	var req request.RequestLoginCodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sent, err := h.service.RequestLoginCode(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "request login code")
		return
	}

	utils.ResponseSuccess(w, "Login code sent", sent)
}

// VerifyLoginCode handles POST /api/auth/verify
func (h *AuthHandler) VerifyLoginCode(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyLoginCodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	auth, err := h.service.VerifyLoginCode(r.Context(), &req, r.UserAgent(), clientIP(r))
	if err != nil {
		h.handleServiceError(w, err, "verify login code")
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.handleServiceError(w, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware has
// already rewritten it from X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
