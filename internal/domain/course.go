package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UUID            uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description" gorm:"size:1000"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	ThumbnailURL    string    `json:"thumbnailUrl" gorm:"size:500"`
	Language        string    `json:"language"`
	DurationMinutes int       `json:"durationMinutes"`
	Level           string    `json:"level"`
	Published       bool      `json:"published" gorm:"not null;default:false"`
	InstructorID    uint      `json:"instructorId" gorm:"not null;index"`
	Instructor      *User     `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// OwnerID identifies the identity allowed to mutate the course.
func (c *Course) OwnerID() uint {
	return c.InstructorID
}

type Lesson struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UUID            uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	CourseID        uint      `json:"courseId" gorm:"not null;index"`
	Course          *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"videoUrl" gorm:"not null"`
	ThumbnailURL    string    `json:"thumbnailUrl" gorm:"size:500"`
	Position        int       `json:"position"`
	DurationMinutes int       `json:"durationMinutes"`
	FreePreview     bool      `json:"freePreview" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
