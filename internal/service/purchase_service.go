package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/metrics"
	"github.com/coursify/marketplace-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PurchaseService struct {
	courseRepo   repository.CourseRepository
	purchaseRepo repository.PurchaseRepository
	log          *zap.Logger
	metrics      *metrics.Metrics
}

func NewPurchaseService(courseRepo repository.CourseRepository, purchaseRepo repository.PurchaseRepository, log *zap.Logger, m *metrics.Metrics) *PurchaseService {
	return &PurchaseService{
		courseRepo:   courseRepo,
		purchaseRepo: purchaseRepo,
		log:          log,
		metrics:      m,
	}
}

// Purchase buys the given courses for the buyer and returns how many new
// purchase records were created. Courses the buyer already owns are skipped
// silently, so re-requesting owned content never fails and never charges
// twice; 0 is a valid result when everything was already owned. An unknown
// course id aborts the whole call before anything is written.
func (s *PurchaseService) Purchase(ctx context.Context, buyer *domain.User, courseIDs []uuid.UUID) (int, error) {
	if len(courseIDs) == 0 {
		return 0, domain.ErrEmptyCourseList
	}

	var toSave []*domain.Purchase
	seen := make(map[uint]bool)

	for _, courseID := range courseIDs {
		course, err := s.courseRepo.GetByUUID(ctx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
			}
			return 0, err
		}

		// Duplicate ids within one request count once.
		if seen[course.ID] {
			continue
		}
		seen[course.ID] = true

		owned, err := s.purchaseRepo.ExistsForUserAndCourse(ctx, buyer.ID, course.ID)
		if err != nil {
			return 0, err
		}
		if owned {
			s.metrics.PurchasesSkipped.Inc()
			continue
		}

		// Snapshot the current price; later price changes must not affect
		// what was paid.
		toSave = append(toSave, &domain.Purchase{
			UUID:         uuid.New(),
			UserID:       buyer.ID,
			CourseID:     course.ID,
			PricePaid:    course.Price,
			PurchaseDate: time.Now(),
		})
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	created, err := s.purchaseRepo.CreateAll(ctx, toSave)
	if err != nil {
		return 0, err
	}
	if created < len(toSave) {
		// A concurrent request for the same buyer won the race on some rows;
		// those courses are owned now, which is the outcome the buyer wanted.
		s.metrics.PurchasesSkipped.Add(float64(len(toSave) - created))
	}

	s.metrics.PurchasesCreated.Add(float64(created))
	s.log.Info("purchase completed",
		zap.Uint("buyerId", buyer.ID),
		zap.Int("requested", len(courseIDs)),
		zap.Int("created", created))
	return created, nil
}

// ListPurchases returns the buyer's purchase history.
func (s *PurchaseService) ListPurchases(ctx context.Context, buyer *domain.User) ([]*domain.Purchase, error) {
	return s.purchaseRepo.ListByUser(ctx, buyer.ID)
}
