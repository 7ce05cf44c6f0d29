package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

// CatalogCache caches the public course preview. Implementations may miss at
// any time; the service always falls back to the repository.
type CatalogCache interface {
	GetPreview(ctx context.Context) ([]*domain.Course, bool)
	SetPreview(ctx context.Context, courses []*domain.Course)
	Invalidate(ctx context.Context)
}

// CourseService manages the catalog. Mutations go through ownership-filtered
// repository calls and invalidate the preview cache.
type CourseService struct {
	repo   ports.CourseRepository
	cache  CatalogCache
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, cache CatalogCache, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, cache: cache, logger: logger}
}

// Create publishes a new course owned by creatorID.
func (s *CourseService) Create(ctx context.Context, creatorID string, in ports.CreateCourseInput) (string, error) {
	if in.Title == "" || in.Description == "" || in.Image == "" {
		return "", domain.ErrInvalidInput
	}
	if in.Price < 0 {
		return "", domain.ErrNegativePrice
	}

	created, err := s.repo.Create(ctx, &domain.Course{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		CreatorID:   creatorID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("creator_id", creatorID).Msg("failed to create course")
		return "", err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info().Str("course_id", created.ID).Str("creator_id", creatorID).Msg("course created")
	return created.ID, nil
}

// Update applies the patch to a course the admin owns. A course that does
// not exist and a course owned by another admin both surface as
// domain.ErrCourseNotFound.
func (s *CourseService) Update(ctx context.Context, creatorID, courseID string, patch domain.CoursePatch) error {
	if courseID == "" {
		return domain.ErrInvalidInput
	}
	if patch.Price != nil && *patch.Price < 0 {
		return domain.ErrNegativePrice
	}
	// An empty patch still goes through the repository so the existence and
	// ownership check fires.
	if err := s.repo.UpdateOwned(ctx, courseID, creatorID, patch); err != nil {
		return err
	}

	if !patch.Empty() {
		s.cache.Invalidate(ctx)
	}
	s.logger.Info().Str("course_id", courseID).Str("creator_id", creatorID).Msg("course updated")
	return nil
}

// ListByCreator returns every course owned by the admin.
func (s *CourseService) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Course, error) {
	return s.repo.FindByCreator(ctx, creatorID)
}

// Preview returns the public catalog, read through the cache.
func (s *CourseService) Preview(ctx context.Context) ([]*domain.Course, error) {
	if courses, ok := s.cache.GetPreview(ctx); ok {
		return courses, nil
	}

	courses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetPreview(ctx, courses)
	return courses, nil
}
