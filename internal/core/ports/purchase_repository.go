package ports

import (
	"context"

	"github.com/swa1245/course-market/internal/core/domain"
)

// PurchaseRepository persists the purchase ledger. The backing store must
// hold a unique constraint on (userId, courseId); Create maps a constraint
// violation to domain.ErrAlreadyPurchased so the pre-check race is closed at
// the persistence layer.
type PurchaseRepository interface {
	Create(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Purchase, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Purchase, error)
}

// PurchaseEventRepository appends to the purchase audit trail.
type PurchaseEventRepository interface {
	InsertEvent(ctx context.Context, e *domain.PurchaseEvent) error
}
