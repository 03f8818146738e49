package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/authstack/backend/internal/db"
	"github.com/authstack/backend/internal/model"
	"github.com/authstack/backend/internal/password"
	"github.com/authstack/backend/internal/token"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72
	maxEmailLength    = 254
	maxNameLength     = 128
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	store  UserStore
	hasher *password.Hasher
	tokens *token.Engine
}

func NewAuthService(store UserStore, hasher *password.Hasher, tokens *token.Engine) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens}
}

func (s *AuthService) Tokens() *token.Engine {
	return s.tokens
}

// Signup creates a user and issues both token classes. Email uniqueness is
// checked up front and again at insert time: the store's unique constraint
// closes the race between the check and the create.
func (s *AuthService) Signup(ctx context.Context, email, name, pass string) (*model.User, string, string, error) {
	if err := validateSignup(email, name, pass); err != nil {
		return nil, "", "", err
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", "", ErrConflict
	}
	if !db.IsNoRows(err) {
		return nil, "", "", err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.store.CreateUser(ctx, email, name, hash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", "", ErrConflict
		}
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Login verifies credentials and issues both token classes. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*model.User, string, string, error) {
	if err := validateLogin(email, pass); err != nil {
		return nil, "", "", err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated. A missing token, a bad signature, an expired
// token and a deleted subject all collapse into ErrUnauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", ErrUnauthorized
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", ErrUnauthorized
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	return s.tokens.MintAccess(user)
}

// Me re-fetches the token subject's record; the user may have been deleted
// after the token was minted.
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// VerifyAccess resolves a bearer token to the identity it is bound to.
func (s *AuthService) VerifyAccess(tokenStr string) (*model.AuthUser, error) {
	claims, err := s.tokens.VerifyAccess(tokenStr)
	if err != nil {
		return nil, ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{ID: userID, Email: claims.Email}, nil
}

func (s *AuthService) issueTokens(user *model.User) (string, string, error) {
	access, err := s.tokens.MintAccess(user)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.MintRefresh(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func validateSignup(email, name, pass string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(name) > maxNameLength {
		return ErrInvalidInput
	}
	if len(pass) < minPasswordLength || len(pass) > maxPasswordLength {
		return ErrInvalidInput
	}
	return nil
}

func validateLogin(email, pass string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if pass == "" {
		return ErrInvalidInput
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength || !emailRx.MatchString(email) {
		return ErrInvalidInput
	}
	return nil
}
