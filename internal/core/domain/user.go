package domain

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidPhone       = errors.New("invalid phone number (digits only, with country code)")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
)

var phoneRegex = regexp.MustCompile(`^[0-9]{8,15}$`)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone" db:"phone"`
	StartDate    time.Time `json:"start_date,omitempty" db:"start_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser validates and builds a user. Phone is the WhatsApp JID user part,
// so it has to be the bare international number without "+" or separators.
func NewUser(id, email, phone string) (*User, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	if phone != "" && !phoneRegex.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     strings.ToLower(email),
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Enrolled reports whether the user has an active program. StartDate stays
// zero until the first generate call.
func (u *User) Enrolled() bool {
	return !u.StartDate.IsZero()
}

func (u *User) StartProgram(at time.Time) {
	u.StartDate = at.UTC()
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
