package handlers

import (
	"errors"
	"net/http"

	"vehicledb/pkg/claims"
	"vehicledb/pkg/user"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	u, sess, err := h.Service.Login(r.Context(), req.EmailAddress, req.Password)
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		h.Logger.Info("login", "error", codeInvalidCredentials)
		writeError(w, http.StatusBadRequest, typeError, codeInvalidCredentials)
		return
	case err != nil:
		h.Logger.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, codeInternal)
		return
	}

	h.issueToken(w, u, sess, "login")
}

// ValidateSession must sit behind middleware.RequireAuth.
func (h *Handler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return
	}

	u, err := h.Service.Get(r.Context(), c.User.ID)
	switch {
	case errors.Is(err, user.ErrNotFound):
		writeError(w, http.StatusForbidden, typeError, codeForbidden)
		return
	case err != nil:
		h.Logger.Error("validate session", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, codeInternal)
		return
	}

	var token string
	if cookie, err := r.Cookie(claims.CookieName); err == nil {
		token = cookie.Value
	}
	writeJSON(w, h.Logger, Identity{UserID: u.ID, EmailAddress: u.EmailAddress, Token: token})
}

// DeleteSession revokes the session named by a valid auth cookie. The cookie
// is cleared in every case that does not fail on the server.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(claims.CookieName); err == nil {
		if c, err := claims.Parse(cookie.Value, h.Secret); err == nil {
			if err := h.Service.Logout(r.Context(), c.SessionID); err != nil {
				h.Logger.Error("logout", "error", err)
				writeError(w, http.StatusInternalServerError, typeError, codeInternal)
				return
			}
			h.Logger.Info("logout", "user", c.User.ID)
		}
	}

	clearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
