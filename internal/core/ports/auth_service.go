package ports

import (
	"context"

	"github.com/swa1245/course-market/internal/core/domain"
)

// SignupInput carries the fields required to register a principal.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService registers principals and exchanges credentials for tokens.
// Two instances exist at runtime, one per scope, backed by separate
// repositories.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (string, *domain.Principal, error)
}
