package ports

import (
	"context"
	"time"

	"github.com/swa1245/course-market/internal/core/domain"
)

// PurchaseEventInput is the DTO handed to the audit dispatcher after a
// purchase commits.
type PurchaseEventInput struct {
	PurchaseID string
	UserID     string
	CourseID   string
	Price      float64
	OccurredAt time.Time
}

// OwnedCourse is one entry of a user's purchase history: the purchase joined
// with a read-only projection of its course.
type OwnedCourse struct {
	PurchaseID   string
	PurchaseDate time.Time
	Course       *domain.Course
}

// PurchaseService enforces the ledger invariant: at most one purchase per
// (user, course) pair.
type PurchaseService interface {
	Purchase(ctx context.Context, userID, courseID string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, userID string) ([]OwnedCourse, error)
}
