package claims

import (
	"context"
	"errors"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

type contextKey string

const (
	TokenContextKey contextKey = "token"
	CookieName                 = "auth"

	issuer = "vehicledb"
)

var ErrInvalidToken = errors.New("invalid token")

type User struct {
	EmailAddress string `json:"email_address"`
	ID           string `json:"id"`
}

// Claims travel in the auth cookie. SessionID ties the token to a row in the
// session repository so logout can revoke it before it expires.
type Claims struct {
	User      User   `json:"user"`
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

func New(user User, sessionID string, now time.Time, ttl time.Duration) *Claims {
	return &Claims{
		User:      user,
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.UTC().Unix(),
			ExpiresAt: now.Add(ttl).UTC().Unix(),
			Issuer:    issuer,
		},
	}
}

func (c *Claims) Sign(secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// Parse validates signature, algorithm and expiry.
func Parse(token string, secret []byte) (*Claims, error) {
	c := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		method, ok := t.Method.(*jwt.SigningMethodHMAC)
		if !ok || method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if c.User.ID == "" || c.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}

func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(TokenContextKey).(*Claims)
	return c, ok && c != nil && c.User.ID != ""
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, TokenContextKey, c)
}
