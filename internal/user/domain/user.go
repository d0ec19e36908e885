package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is a locally registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// SafeUser is the user view without credentials, for display and for
// the session record.
type SafeUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// NewUser creates a user with a fresh id.
func NewUser(name, email string) *User {
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Safe returns the user view without credentials.
func (u *User) Safe() SafeUser {
	return SafeUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// IsValidEmail reports whether the address has a plausible shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword reports whether the password meets the length rule.
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}
