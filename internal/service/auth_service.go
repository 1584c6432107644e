package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dejargonizer/internal/dto"
	"dejargonizer/internal/models"
	"dejargonizer/internal/repository"
	"dejargonizer/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email format")
)

type AuthService struct {
	userStore  UserStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(userStore UserStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userStore:  userStore,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, ErrInvalidEmail
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashedPassword,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		// The unique index on email closes the check-then-insert window
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	token, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("Failed to update last login", zap.Error(err))
	}

	token, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

// Verify resolves an already-validated token's user id into the current
// user record.
func (s *AuthService) Verify(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &dto.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}, nil
}
