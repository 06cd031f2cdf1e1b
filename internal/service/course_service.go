package service

import (
	"context"
	"errors"
	"time"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

type CourseInput struct {
	Title           string
	Description     string
	Category        string
	Price           float64
	ThumbnailURL    string
	Language        string
	DurationMinutes int
	Level           string
	Published       bool
}

func (s *CourseService) Create(ctx context.Context, instructor *domain.User, input CourseInput) (*domain.Course, error) {
	course := &domain.Course{
		UUID:            uuid.New(),
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Price:           input.Price,
		ThumbnailURL:    input.ThumbnailURL,
		Language:        input.Language,
		DurationMinutes: input.DurationMinutes,
		Level:           input.Level,
		Published:       input.Published,
		InstructorID:    instructor.ID,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListPublished(ctx context.Context) ([]*domain.Course, error) {
	return s.courseRepo.ListPublished(ctx)
}

func (s *CourseService) ListByInstructor(ctx context.Context, instructor *domain.User) ([]*domain.Course, error) {
	return s.courseRepo.ListByInstructor(ctx, instructor.ID)
}

// Update mutates a course after the ownership check; a non-owner aborts
// before any write.
func (s *CourseService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input CourseInput) (*domain.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeMutation(actor, course.OwnerID()); err != nil {
		return nil, err
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Category = input.Category
	course.Price = input.Price
	course.ThumbnailURL = input.ThumbnailURL
	course.Language = input.Language
	course.DurationMinutes = input.DurationMinutes
	course.Level = input.Level
	course.Published = input.Published
	course.UpdatedAt = time.Now()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := AuthorizeMutation(actor, course.OwnerID()); err != nil {
		return err
	}

	return s.courseRepo.Delete(ctx, course.ID)
}
