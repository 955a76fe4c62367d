package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baharkarakas/storefront/internal/api/httpx"
	"github.com/baharkarakas/storefront/internal/auth"
	"github.com/baharkarakas/storefront/internal/services"
)

type AuthHandler struct {
	tm  *auth.TokenManager
	svc *services.UserService
}

func NewAuthHandler(tm *auth.TokenManager, svc *services.UserService) *AuthHandler {
	return &AuthHandler{tm: tm, svc: svc}
}

type tokenResp struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	u, err := h.svc.Authenticate(req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		httpx.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	access, refresh, err := h.tm.GeneratePair(u.ID, string(u.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{AccessToken: access, RefreshToken: refresh})
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges a refresh token for a new pair. Access tokens and
// garbage are both rejected as 401 so the client falls through to its
// session-expired path.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	claims, err := h.tm.ParseRefresh(req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "invalid refresh token")
		return
	}
	access, refresh, err := h.tm.GeneratePair(claims.UserID, claims.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{AccessToken: access, RefreshToken: refresh})
}
