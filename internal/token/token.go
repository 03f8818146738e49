// Package token mints and verifies the two stateless JWT classes: short-lived
// access tokens and long-lived refresh tokens. The two classes are signed with
// independent secrets so a refresh token can never pass as an access token.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authstack/backend/internal/model"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// token, wrong algorithm, wrong secret, expiry. Callers get no detail about
// which one it was.
var ErrInvalidToken = errors.New("invalid token")

// ErrMisconfigured is returned by New for unusable key material: an empty
// secret, identical secrets for the two classes, or a non-positive TTL.
var ErrMisconfigured = errors.New("token config invalid")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Engine is safe for concurrent use: all fields are read-only after New.
type Engine struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

type Option func(*Engine)

// WithClock overrides the engine clock, used by tests to cross TTL boundaries
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...Option) (*Engine, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("%w: secrets must be set", ErrMisconfigured)
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", ErrMisconfigured)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("%w: TTLs must be positive", ErrMisconfigured)
	}

	e := &Engine{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) AccessTTL() time.Duration  { return e.accessTTL }
func (e *Engine) RefreshTTL() time.Duration { return e.refreshTTL }

func (e *Engine) MintAccess(user *model.User) (string, error) {
	return e.mint(user, e.accessSecret, e.accessTTL)
}

func (e *Engine) MintRefresh(user *model.User) (string, error) {
	return e.mint(user, e.refreshSecret, e.refreshTTL)
}

func (e *Engine) VerifyAccess(tokenStr string) (*Claims, error) {
	return e.verify(tokenStr, e.accessSecret)
}

func (e *Engine) VerifyRefresh(tokenStr string) (*Claims, error) {
	return e.verify(tokenStr, e.refreshSecret)
}

func (e *Engine) mint(user *model.User, secret []byte, ttl time.Duration) (string, error) {
	now := e.now()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (e *Engine) verify(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(e.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID returns the subject as the numeric user id the token is bound to.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
