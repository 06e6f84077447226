package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iamfelixjp/jobbers-app/apperror"
	"github.com/iamfelixjp/jobbers-app/config"
)

// AuthService provides registration, login and profile update. Dependencies
// are injected via the constructor: the user store for persistence and the
// auth configuration for token issuance.
type AuthService struct {
	store      UserStore
	authConfig config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		store:      store,
		authConfig: authConfig,
	}
}

// Register creates a new account and returns the public user view plus a
// freshly issued token. A duplicate email surfaces as a ConflictError; no
// second record is created.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:           req.Name,
		LastName:       DefaultLastName,
		Email:          strings.ToLower(req.Email),
		HashedPassword: string(hashedPassword),
		Location:       DefaultLocation,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.respondWithToken(created)
}

// Login verifies credentials and returns the user view plus a token. An
// unknown email and a wrong password produce the same AuthError so the
// response does not reveal which factor was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return s.respondWithToken(user)
}

// UpdateUser overwrites the caller's profile fields and re-issues a token so
// the name embedded in the claims stays in sync with the stored account.
func (s *AuthService) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*AuthResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.LastName = req.LastName
	user.Email = strings.ToLower(req.Email)
	user.Location = req.Location

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.respondWithToken(updated)
}

// respondWithToken assembles the standard auth response for a user.
func (s *AuthService) respondWithToken(user *User) (*AuthResponse, error) {
	token, err := IssueToken(user, s.authConfig)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &AuthResponse{
		User:     user.View(),
		Token:    token,
		Location: user.Location,
	}, nil
}
