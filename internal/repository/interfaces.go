package repository

import (
	"context"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	ListPublished(ctx context.Context) ([]*domain.Course, error)
	ListByInstructor(ctx context.Context, instructorID uint) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id uint) error
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*domain.Lesson, error)
	Update(ctx context.Context, lesson *domain.Lesson) error
	Delete(ctx context.Context, id uint) error
}

type PurchaseRepository interface {
	ExistsForUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error)
	// CreateAll persists the batch in one transaction and returns how many
	// records were actually inserted; rows conflicting with an existing
	// (user, course) pair are dropped, not errors.
	CreateAll(ctx context.Context, purchases []*domain.Purchase) (int, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Purchase, error)
}

type Repositories struct {
	User     UserRepository
	Course   CourseRepository
	Lesson   LessonRepository
	Purchase PurchaseRepository
}
