package ports

import (
	"context"

	"github.com/swa1245/course-market/internal/core/domain"
)

// PrincipalRepository persists one kind of principal (users or admins).
// Implementations back separate collections, which is what keeps the two
// email namespaces disjoint.
type PrincipalRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
}
