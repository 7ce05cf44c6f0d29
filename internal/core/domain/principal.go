package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Kind selects which principal namespace a record lives in. Users and
// admins are stored in disjoint collections, so the same email may exist
// once in each.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// Principal models an authenticated actor: an end user who buys courses,
// or an admin who creates and prices them.
type Principal struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
}

var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")
var ErrPrincipalNotFound = errors.New("principal not found")

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// NormalizeEmail lowercases and trims an email address. All lookups and
// stores go through this so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the (normalized) address has a plausible shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
