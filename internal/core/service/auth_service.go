package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
	"github.com/swa1245/course-market/internal/core/token"
)

const minPasswordLen = 6

// dummyHash is compared against when the email lookup misses, so a login
// attempt costs one bcrypt comparison whether or not the account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService implements signup and login for one principal kind. The same
// implementation serves both scopes; the repository and scope passed at
// construction decide which namespace and signing secret apply.
type AuthService struct {
	repo   ports.PrincipalRepository
	issuer *token.Issuer
	scope  token.Scope
}

func NewAuthService(repo ports.PrincipalRepository, issuer *token.Issuer, scope token.Scope) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, scope: scope}
}

// Signup validates and registers a new principal, returning its id. The
// stored record never contains the raw password.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (string, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return "", domain.ErrInvalidInput
	}
	if !domain.ValidEmail(email) {
		return "", domain.ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return "", domain.ErrInvalidInput
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	created, err := s.repo.Create(ctx, &domain.Principal{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// Login verifies credentials and issues a scoped token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}

	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.issuer.Issue(p.ID, s.scope)
	if err != nil {
		return "", nil, err
	}
	return tkn, p, nil
}
