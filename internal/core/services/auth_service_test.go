package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/services"
)

func newAuthService(users *MockUserRepo) *services.AuthService {
	tokens := services.NewTokenService("test-secret", "trainflow-engine", time.Hour, users)
	return services.NewAuthService(users, tokens)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a user with hashed password", func(t *testing.T) {
		users := NewMockUserRepo()
		svc := newAuthService(users)

		user, err := svc.Register(ctx, services.RegisterInput{
			Email:    "Marco@Example.com",
			Password: "correct-horse",
			Phone:    "393331234567",
		})

		assert.NoError(t, err)
		assert.Equal(t, "marco@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		assert.NoError(t, user.CheckPassword("correct-horse"))

		stored, err := users.GetByEmail(ctx, "marco@example.com")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("Rejects invalid email", func(t *testing.T) {
		svc := newAuthService(NewMockUserRepo())

		_, err := svc.Register(ctx, services.RegisterInput{
			Email:    "not-an-email",
			Password: "correct-horse",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("Rejects malformed phone numbers", func(t *testing.T) {
		svc := newAuthService(NewMockUserRepo())

		_, err := svc.Register(ctx, services.RegisterInput{
			Email:    "marco@example.com",
			Password: "correct-horse",
			Phone:    "+39 333 1234567",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidPhone)
	})

	t.Run("Rejects short passwords", func(t *testing.T) {
		svc := newAuthService(NewMockUserRepo())

		_, err := svc.Register(ctx, services.RegisterInput{
			Email:    "marco@example.com",
			Password: "short",
		})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("Rejects duplicate email", func(t *testing.T) {
		users := NewMockUserRepo()
		svc := newAuthService(users)

		_, err := svc.Register(ctx, services.RegisterInput{
			Email:    "marco@example.com",
			Password: "correct-horse",
		})
		assert.NoError(t, err)

		_, err = svc.Register(ctx, services.RegisterInput{
			Email:    "marco@example.com",
			Password: "another-pass",
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	users := NewMockUserRepo()
	svc := newAuthService(users)

	registered, err := svc.Register(ctx, services.RegisterInput{
		Email:    "marco@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	t.Run("Valid credentials return a usable token", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "marco@example.com", "correct-horse")

		assert.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)

		tokens := services.NewTokenService("test-secret", "trainflow-engine", time.Hour, users)
		subject, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, registered.ID, subject)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "marco@example.com", "wrong-pass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown email is indistinguishable from wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "correct-horse")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
