package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		role:     domain.RoleStudent,
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		UUID:           uuid.New(),
		Username:       b.username,
		FirstName:      "Test",
		LastName:       "User",
		Email:          b.email,
		HashedPassword: string(hashedPassword),
		Role:           b.role,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// CourseBuilder creates test courses with a builder pattern
type CourseBuilder struct {
	title      string
	price      float64
	published  bool
	instructor *domain.User
}

func NewCourseBuilder(instructor *domain.User) *CourseBuilder {
	return &CourseBuilder{
		title:      fmt.Sprintf("Test Course %s", uuid.New().String()[:8]),
		price:      49.99,
		published:  true,
		instructor: instructor,
	}
}

func (b *CourseBuilder) WithTitle(title string) *CourseBuilder {
	b.title = title
	return b
}

func (b *CourseBuilder) WithPrice(price float64) *CourseBuilder {
	b.price = price
	return b
}

func (b *CourseBuilder) Unpublished() *CourseBuilder {
	b.published = false
	return b
}

func (b *CourseBuilder) Build(t *testing.T, db *gorm.DB) *domain.Course {
	t.Helper()

	course := &domain.Course{
		UUID:         uuid.New(),
		Title:        b.title,
		Description:  "A course created for tests",
		Price:        b.price,
		Published:    b.published,
		InstructorID: b.instructor.ID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	return course
}

// BuildPurchase records an existing purchase of course by user.
func BuildPurchase(t *testing.T, db *gorm.DB, user *domain.User, course *domain.Course) *domain.Purchase {
	t.Helper()

	purchase := &domain.Purchase{
		UUID:         uuid.New(),
		UserID:       user.ID,
		CourseID:     course.ID,
		PricePaid:    course.Price,
		PurchaseDate: time.Now(),
	}

	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("failed to create purchase: %v", err)
	}

	return purchase
}
