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

// LessonService mutates lessons under the parent course's ownership: the only
// identity allowed to touch a lesson is the instructor of its course.
type LessonService struct {
	lessonRepo repository.LessonRepository
	courseRepo repository.CourseRepository
}

func NewLessonService(lessonRepo repository.LessonRepository, courseRepo repository.CourseRepository) *LessonService {
	return &LessonService{
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
	}
}

type LessonInput struct {
	Title           string
	Description     string
	VideoURL        string
	ThumbnailURL    string
	Position        int
	DurationMinutes int
	FreePreview     bool
}

func (s *LessonService) Create(ctx context.Context, actor *domain.User, courseID uuid.UUID, input LessonInput) (*domain.Lesson, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeMutation(actor, course.OwnerID()); err != nil {
		return nil, err
	}

	lesson := &domain.Lesson{
		UUID:            uuid.New(),
		CourseID:        course.ID,
		Title:           input.Title,
		Description:     input.Description,
		VideoURL:        input.VideoURL,
		ThumbnailURL:    input.ThumbnailURL,
		Position:        input.Position,
		DurationMinutes: input.DurationMinutes,
		FreePreview:     input.FreePreview,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Get(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	lesson, err := s.lessonRepo.GetByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.lessonRepo.ListByCourse(ctx, course.ID)
}

func (s *LessonService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input LessonInput) (*domain.Lesson, error) {
	lesson, owner, err := s.getWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeMutation(actor, owner); err != nil {
		return nil, err
	}

	lesson.Title = input.Title
	lesson.Description = input.Description
	lesson.VideoURL = input.VideoURL
	lesson.ThumbnailURL = input.ThumbnailURL
	lesson.Position = input.Position
	lesson.DurationMinutes = input.DurationMinutes
	lesson.FreePreview = input.FreePreview
	lesson.UpdatedAt = time.Now()

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	lesson, owner, err := s.getWithOwner(ctx, id)
	if err != nil {
		return err
	}

	if err := AuthorizeMutation(actor, owner); err != nil {
		return err
	}

	return s.lessonRepo.Delete(ctx, lesson.ID)
}

func (s *LessonService) getCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// getWithOwner resolves a lesson together with the owning instructor id,
// which lives on the parent course.
func (s *LessonService) getWithOwner(ctx context.Context, id uuid.UUID) (*domain.Lesson, uint, error) {
	lesson, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if lesson.Course == nil {
		return nil, 0, domain.ErrCourseNotFound
	}
	return lesson, lesson.Course.OwnerID(), nil
}
