package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vehicledb/pkg/claims"
	"vehicledb/pkg/session"
	"vehicledb/pkg/user"
)

type Credentials struct {
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

// Identity is the body returned for every successful session lookup or creation.
type Identity struct {
	UserID       string `json:"user_id"`
	EmailAddress string `json:"email_address"`
	Token        string `json:"token"`
}

type Handler struct {
	Service    user.ServiceInterface
	Secret     []byte
	SessionTTL time.Duration
	Logger     *slog.Logger
}

func NewUserHandler(service user.ServiceInterface, secret []byte, ttl time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		Service:    service,
		Secret:     secret,
		SessionTTL: ttl,
		Logger:     logger,
	}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	u, sess, err := h.Service.Register(r.Context(), req.EmailAddress, req.Password)
	switch {
	case errors.Is(err, user.ErrUserExists):
		writeError(w, http.StatusConflict, typeError, codeEmailTaken)
		return
	case err != nil:
		h.Logger.Error("register", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, codeInternal)
		return
	}

	h.issueToken(w, u, sess, "register")
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (Credentials, bool) {
	var req Credentials
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return req, false
	}
	req.EmailAddress = strings.TrimSpace(req.EmailAddress)
	if req.EmailAddress == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, typeError, codeInvalidRequest)
		return req, false
	}
	return req, true
}

// issueToken signs a token bound to sess, stores it in the auth cookie and
// echoes it in the body.
func (h *Handler) issueToken(w http.ResponseWriter, u *user.User, sess *session.Session, action string) {
	now := time.Now()
	c := claims.New(claims.User{EmailAddress: u.EmailAddress, ID: u.ID}, sess.ID, now, h.SessionTTL)
	token, err := c.Sign(h.Secret)
	if err != nil {
		h.Logger.Error("token signing", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, codeInternal)
		return
	}

	setAuthCookie(w, token, now.Add(h.SessionTTL))
	if ok := writeJSON(w, h.Logger, Identity{UserID: u.ID, EmailAddress: u.EmailAddress, Token: token}); ok {
		h.Logger.Info(action, "user", u.ID)
	}
}
