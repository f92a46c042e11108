package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/smsforge/campaign-service/internal/auth"
	"github.com/smsforge/campaign-service/internal/models"
	"github.com/smsforge/campaign-service/internal/repository"
)

// AuthService handles signup, login, and request credential resolution
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResult, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
	UserFromAPIKey(ctx context.Context, apiKey string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenIssuer
	logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup registers a new user under a fresh account and returns a token
func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, models.ErrConflictWithMsg("email already exists")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		APIKey:       apiKey,
	}

	if err := s.userRepo.CreateWithAccount(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up",
		slog.Int64("user_id", user.ID),
		slog.Int64("account_id", user.AccountID),
	)

	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates an email/password pair and returns a token
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, models.ErrUnauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

// UserFromToken resolves the user a bearer token was issued for
func (s *authService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, models.ErrUnauthorized("invalid token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized("invalid token")
		}
		return nil, err
	}

	return user, nil
}

// UserFromAPIKey resolves the user owning an API key
func (s *authService) UserFromAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	user, err := s.userRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized("invalid API key")
		}
		return nil, err
	}

	return user, nil
}

// SignupRequest represents a signup request
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate performs validation on the signup request
func (r *SignupRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return models.ErrInvalidInput("email and password are required")
	}
	if !auth.IsValidEmail(r.Email) {
		return models.ErrInvalidInput("invalid email format")
	}
	if errs := auth.PasswordErrors(r.Password); len(errs) > 0 {
		return models.ErrInvalidInput(strings.Join(errs, ". "))
	}
	return nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate performs validation on the login request
func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return models.ErrInvalidInput("email and password are required")
	}
	return nil
}

// AuthResult carries a signed token and the user it belongs to
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
