package postgres

import (
	"context"

	"github.com/coursify/marketplace-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *purchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) ExistsForUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// CreateAll inserts the batch in a single statement. ON CONFLICT DO NOTHING
// turns a race with a concurrent buyer of the same course into a skipped row
// instead of a constraint error; the returned count only covers rows that
// actually landed.
func (r *purchaseRepository) CreateAll(ctx context.Context, purchases []*domain.Purchase) (int, error) {
	if len(purchases) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&purchases)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Purchase, error) {
	var purchases []*domain.Purchase
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, err
}
