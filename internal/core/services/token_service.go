package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates the bearer tokens protecting the program,
// schedule and progress endpoints. Claims are standard registered claims: the
// subject is the user id, the issuer pins the token to this deployment.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	users  domain.UserRepository
}

func NewTokenService(secret string, issuer string, ttl time.Duration, users domain.UserRepository) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		users:  users,
	}
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken returns the subject user id of a valid token. A token whose
// user no longer exists is rejected: deleting an account revokes its tokens.
func (s *TokenService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("token service: invalid token: %w", err)
	}

	if claims.Subject == "" {
		return "", errors.New("token service: token has no subject")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := s.users.GetByID(ctx, claims.Subject); err != nil {
		return "", fmt.Errorf("token service: subject no longer valid: %w", err)
	}

	return claims.Subject, nil
}
