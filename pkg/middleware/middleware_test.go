package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"vehicledb/pkg/claims"
	"vehicledb/pkg/middleware"
	"vehicledb/pkg/session"
)

var secret = []byte("test-secret")

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Create(ctx context.Context, userID, sessionID string, ttl time.Duration) (*session.Session, error) {
	args := m.Called(userID, sessionID, ttl)
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockSessions) IsValid(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessions) Invalidate(ctx context.Context, sessionID string) error {
	return m.Called(sessionID).Error(0)
}

func token(t *testing.T, sec []byte, ttl time.Duration) string {
	t.Helper()
	c := claims.New(claims.User{EmailAddress: "a@b.com", ID: "uid"}, "sid", time.Now(), ttl)
	s, err := c.Sign(sec)
	assert.NoError(t, err)
	return s
}

func TestRequireAuth(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims.FromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(c.User.ID))
	})

	tests := []struct {
		name           string
		cookie         string
		valid          bool
		lookupErr      error
		expectedStatus int
		expectedBody   string
	}{
		{name: "no cookie", expectedStatus: http.StatusUnauthorized, expectedBody: `{"error":"unauthorized"}`},
		{name: "garbage token", cookie: "abc", expectedStatus: http.StatusForbidden, expectedBody: `{"error":"forbidden"}`},
		{name: "wrong secret", cookie: token(t, []byte("other"), time.Hour), expectedStatus: http.StatusForbidden},
		{name: "expired", cookie: token(t, secret, -time.Minute), expectedStatus: http.StatusForbidden},
		{name: "revoked session", cookie: token(t, secret, time.Hour), valid: false, expectedStatus: http.StatusForbidden},
		{name: "lookup failure", cookie: token(t, secret, time.Hour), lookupErr: errors.New("db down"), expectedStatus: http.StatusInternalServerError},
		{name: "valid", cookie: token(t, secret, time.Hour), valid: true, expectedStatus: http.StatusOK, expectedBody: "uid"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sessions := new(mockSessions)
			sessions.On("IsValid", "sid").Return(test.valid, test.lookupErr)
			h := middleware.RequireAuth(secret, sessions, slog.Default())(echo)

			req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
			if test.cookie != "" {
				req.AddCookie(&http.Cookie{Name: claims.CookieName, Value: test.cookie})
			}
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			assert.Equal(t, test.expectedStatus, rr.Code)
			if test.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), test.expectedBody)
			}
		})
	}
}

func TestPanic(t *testing.T) {
	h := middleware.Panic(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := middleware.AccessLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/v1/session", nil))

	assert.Contains(t, buf.String(), "method=DELETE")
	assert.Contains(t, buf.String(), "path=/v1/session")
	assert.Contains(t, buf.String(), "status=204")
}
