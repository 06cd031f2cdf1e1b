package service_test

import (
	"context"
	"testing"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/service"
	"github.com/coursify/marketplace-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseService_OwnershipGuard(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	courseService := services.Course
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).WithTitle("Original").Build(t, testDB.DB)

	input := service.CourseInput{Title: "Renamed", Price: 10}

	t.Run("non-owner cannot update", func(t *testing.T) {
		_, err := courseService.Update(ctx, other, course.UUID, input)
		assert.ErrorIs(t, err, domain.ErrNotOwner)

		got, err := courseService.Get(ctx, course.UUID)
		require.NoError(t, err)
		assert.Equal(t, "Original", got.Title)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := courseService.Delete(ctx, other, course.UUID)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("owner can update", func(t *testing.T) {
		updated, err := courseService.Update(ctx, owner, course.UUID, input)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, courseService.Delete(ctx, owner, course.UUID))

		_, err := courseService.Get(ctx, course.UUID)
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := courseService.Update(ctx, owner, uuid.New(), input)
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}

func TestLessonService_TransitiveOwnership(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	lessonService := services.Lesson
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)

	input := service.LessonInput{Title: "Intro", VideoURL: "https://cdn.example.com/intro.mp4"}

	t.Run("non-owner cannot create", func(t *testing.T) {
		_, err := lessonService.Create(ctx, other, course.UUID, input)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	lesson, err := lessonService.Create(ctx, owner, course.UUID, input)
	require.NoError(t, err)

	t.Run("non-owner cannot update", func(t *testing.T) {
		_, err := lessonService.Update(ctx, other, lesson.UUID, input)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := lessonService.Delete(ctx, other, lesson.UUID)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("owner can update and delete", func(t *testing.T) {
		updated, err := lessonService.Update(ctx, owner, lesson.UUID, service.LessonInput{
			Title:    "Intro v2",
			VideoURL: input.VideoURL,
		})
		require.NoError(t, err)
		assert.Equal(t, "Intro v2", updated.Title)

		require.NoError(t, lessonService.Delete(ctx, owner, lesson.UUID))

		_, err = lessonService.Get(ctx, lesson.UUID)
		assert.ErrorIs(t, err, domain.ErrLessonNotFound)
	})
}
