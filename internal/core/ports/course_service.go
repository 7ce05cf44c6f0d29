package ports

import (
	"context"

	"github.com/swa1245/course-market/internal/core/domain"
)

// CreateCourseInput carries the fields required to publish a course.
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	Image       string
}

// CourseService manages the course catalog on behalf of admins and serves
// the public preview.
type CourseService interface {
	Create(ctx context.Context, creatorID string, in CreateCourseInput) (string, error)
	Update(ctx context.Context, creatorID, courseID string, patch domain.CoursePatch) error
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Course, error)
	Preview(ctx context.Context) ([]*domain.Course, error)
}
