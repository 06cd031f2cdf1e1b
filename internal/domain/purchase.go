package domain

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records that a user bought a course. The composite unique index on
// (user_id, course_id) is the store-level backstop for idempotence: a losing
// concurrent writer hits the constraint instead of creating a duplicate.
type Purchase struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UUID         uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID       uint      `json:"userId" gorm:"not null;uniqueIndex:idx_purchases_user_course"`
	User         *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CourseID     uint      `json:"courseId" gorm:"not null;uniqueIndex:idx_purchases_user_course"`
	Course       *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	PricePaid    float64   `json:"pricePaid" gorm:"not null"`
	PurchaseDate time.Time `json:"purchaseDate" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}
