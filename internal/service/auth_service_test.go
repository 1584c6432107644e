package service

import (
	"context"
	"testing"
	"time"

	"dejargonizer/internal/dto"
	"dejargonizer/internal/repository"
	"dejargonizer/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (*AuthService, *repository.MemoryUserRepository, *auth.JWTManager) {
	users := repository.NewMemoryUserRepository()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwtManager, zap.NewNop()), users, jwtManager
}

func TestRegister_CreatesUserAndIssuesToken(t *testing.T) {
	svc, users, jwtManager := newAuthFixture()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "  Alice@Example.COM ",
		Password: "s3cret-pass",
		Name:     " Alice ",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.Name)
	require.NotEmpty(t, resp.Token)

	claims, err := jwtManager.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	stored, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword("s3cret-pass", stored.Password))
}

func TestRegister_RejectsInvalidEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	for _, email := range []string{"", "no-at-sign.com", "nodot@host"} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:    email,
			Password: "password",
		})
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "bob@example.com",
		Password: "first",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "BOB@example.com",
		Password: "second",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_Success(t *testing.T) {
	svc, users, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "carol@example.com",
		Password: "carols-password",
		Name:     "Carol",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Carol@Example.com",
		Password: "carols-password",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	stored, err := users.GetByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "dave@example.com",
		Password: "right-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "dave@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_ReturnsCurrentUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "erin@example.com",
		Password: "password",
		Name:     "Erin",
	})
	require.NoError(t, err)

	userID, err := uuid.Parse(reg.User.ID)
	require.NoError(t, err)

	user, err := svc.Verify(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "erin@example.com", user.Email)
	assert.Equal(t, "Erin", user.Name)
}

func TestVerify_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Verify(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
