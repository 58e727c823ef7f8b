package api

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/najdeno/internal/auth"
)

// AuthHandler handles the admin login. There is one fixed credential pair
// from configuration; this is a demo gate, not a security mechanism.
type AuthHandler struct {
	JWTSecret    string
	AdminEmail   string
	PasswordHash []byte // bcrypt hash of the configured admin password
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	if !strings.EqualFold(req.Email, h.AdminEmail) ||
		bcrypt.CompareHashAndPassword(h.PasswordHash, []byte(req.Password)) != nil {
		slog.Warn("admin login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, h.AdminEmail)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("admin logged in", "email", h.AdminEmail)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, Email: h.AdminEmail})
}
