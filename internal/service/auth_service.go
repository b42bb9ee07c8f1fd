package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pixelvault/gamestore-api/internal/auth"
	"github.com/pixelvault/gamestore-api/internal/model"
)

// UserRepositoryInterface defines the interface for user data access.
type UserRepositoryInterface interface {
	Insert(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// TokenIssuer issues signed tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uuid.UUID, role auth.Role) (string, error)
}

// AuthService provides registration, login, and profile lookup.
type AuthService struct {
	users  UserRepositoryInterface
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepositoryInterface, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user account with the "user" role and returns a
// signed token. Returns ErrEmailTaken when the email already exists.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         string(auth.RoleUser),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, auth.Role(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token.
// Returns ErrInvalidCredentials for both unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, auth.Role(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}

// Profile returns the user for the given id.
func (s *AuthService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
