package domain

import (
	"errors"
	"time"
)

// Purchase records that a user owns a course. The (UserID, CourseID) pair is
// unique; records are never mutated or deleted.
type Purchase struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CourseID     string    `json:"courseId"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

// PurchaseEvent is the append-only audit record written after a purchase
// commits. It is produced asynchronously by the dispatcher workers.
type PurchaseEvent struct {
	PurchaseID string    `json:"purchaseId"`
	UserID     string    `json:"userId"`
	CourseID   string    `json:"courseId"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurredAt"`
}

var ErrAlreadyPurchased = errors.New("course already purchased")
var ErrPurchaseNotFound = errors.New("purchase not found")
