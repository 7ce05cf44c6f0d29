package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

// EventPublisher hands purchase events to the async audit pipeline.
type EventPublisher interface {
	Enqueue(event ports.PurchaseEventInput)
}

// PurchaseService enforces the ledger invariant. The pre-check gives the
// friendly 409 in the common case; the repository's unique index on
// (userId, courseId) closes the check-then-create race.
type PurchaseService struct {
	purchases ports.PurchaseRepository
	courses   ports.CourseRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

func NewPurchaseService(
	purchases ports.PurchaseRepository,
	courses ports.CourseRepository,
	publisher EventPublisher,
	logger zerolog.Logger,
) *PurchaseService {
	return &PurchaseService{purchases: purchases, courses: courses, publisher: publisher, logger: logger}
}

// Purchase records that the user bought the course. Duplicate purchases are
// rejected, never replayed.
func (s *PurchaseService) Purchase(ctx context.Context, userID, courseID string) (*domain.Purchase, error) {
	if courseID == "" {
		return nil, domain.ErrInvalidInput
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.purchases.FindByUserAndCourse(ctx, userID, courseID); err == nil {
		return nil, domain.ErrAlreadyPurchased
	} else if !errors.Is(err, domain.ErrPurchaseNotFound) {
		return nil, err
	}

	created, err := s.purchases.Create(ctx, &domain.Purchase{
		UserID:       userID,
		CourseID:     courseID,
		PurchaseDate: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Enqueue(ports.PurchaseEventInput{
		PurchaseID: created.ID,
		UserID:     userID,
		CourseID:   courseID,
		Price:      course.Price,
		OccurredAt: created.PurchaseDate,
	})

	s.logger.Info().Str("user_id", userID).Str("course_id", courseID).Msg("course purchased")
	return created, nil
}

// ListPurchases returns the user's purchase history, each entry joined with
// its course's public fields.
func (s *PurchaseService) ListPurchases(ctx context.Context, userID string) ([]ports.OwnedCourse, error) {
	purchases, err := s.purchases.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.CourseID)
	}
	courses, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	owned := make([]ports.OwnedCourse, 0, len(purchases))
	for _, p := range purchases {
		owned = append(owned, ports.OwnedCourse{
			PurchaseID:   p.ID,
			PurchaseDate: p.PurchaseDate,
			Course:       courses[p.CourseID],
		})
	}
	return owned, nil
}
