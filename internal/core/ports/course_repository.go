package ports

import (
	"context"

	"github.com/swa1245/course-market/internal/core/domain"
)

// CourseRepository persists the course catalog.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Course, error)
	FindByCreator(ctx context.Context, creatorID string) ([]*domain.Course, error)
	FindAll(ctx context.Context) ([]*domain.Course, error)

	// UpdateOwned applies the patch to the course matching both id and
	// creatorID in a single filter; it returns domain.ErrCourseNotFound
	// when no document matches, whether the course is missing or owned
	// by someone else.
	UpdateOwned(ctx context.Context, id, creatorID string, patch domain.CoursePatch) error
}
