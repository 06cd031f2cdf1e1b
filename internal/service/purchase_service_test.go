package service_test

import (
	"context"
	"testing"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPurchases(t *testing.T, testDB *testutil.TestDB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.Purchase{}).Count(&count).Error)
	return count
}

func TestPurchaseService_Purchase(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	services, _ := testutil.NewServices(t, testDB)
	purchaseService := services.Purchase
	ctx := context.Background()

	t.Run("empty course list", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := purchaseService.Purchase(ctx, buyer, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyCourseList)
	})

	t.Run("unknown course aborts the whole call", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
		course := testutil.NewCourseBuilder(instructor).Build(t, testDB.DB)

		unknown := uuid.New()
		_, err := purchaseService.Purchase(ctx, buyer, []uuid.UUID{course.UUID, unknown})
		require.ErrorIs(t, err, domain.ErrCourseNotFound)
		assert.Contains(t, err.Error(), unknown.String())

		// Fail-fast: nothing from the same call may have been written.
		assert.EqualValues(t, 0, countPurchases(t, testDB))
	})

	t.Run("duplicate ids in one request count once", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
		course := testutil.NewCourseBuilder(instructor).Build(t, testDB.DB)

		count, err := purchaseService.Purchase(ctx, buyer, []uuid.UUID{course.UUID, course.UUID})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.EqualValues(t, 1, countPurchases(t, testDB))
	})

	t.Run("repeat purchase is an idempotent no-op", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
		course := testutil.NewCourseBuilder(instructor).Build(t, testDB.DB)

		count, err := purchaseService.Purchase(ctx, buyer, []uuid.UUID{course.UUID})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = purchaseService.Purchase(ctx, buyer, []uuid.UUID{course.UUID})
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.EqualValues(t, 1, countPurchases(t, testDB))
	})

	t.Run("already owned courses are skipped", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
		courseA := testutil.NewCourseBuilder(instructor).WithTitle("Course A").Build(t, testDB.DB)
		courseB := testutil.NewCourseBuilder(instructor).WithTitle("Course B").Build(t, testDB.DB)

		testutil.BuildPurchase(t, testDB.DB, buyer, courseA)

		count, err := purchaseService.Purchase(ctx, buyer, []uuid.UUID{courseA.UUID, courseB.UUID})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var purchases []*domain.Purchase
		require.NoError(t, testDB.DB.Where("user_id = ?", buyer.ID).Find(&purchases).Error)
		require.Len(t, purchases, 2)

		courseIDs := []uint{purchases[0].CourseID, purchases[1].CourseID}
		assert.Contains(t, courseIDs, courseA.ID)
		assert.Contains(t, courseIDs, courseB.ID)
	})

	t.Run("price is snapshotted at purchase time", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
		course := testutil.NewCourseBuilder(instructor).WithPrice(19.99).Build(t, testDB.DB)

		_, err := purchaseService.Purchase(ctx, buyer, []uuid.UUID{course.UUID})
		require.NoError(t, err)

		// Raise the price after the purchase.
		require.NoError(t, testDB.DB.Model(course).Update("price", 99.99).Error)

		var purchase domain.Purchase
		require.NoError(t, testDB.DB.First(&purchase, "user_id = ?", buyer.ID).Error)
		assert.InDelta(t, 19.99, purchase.PricePaid, 0.001)
	})

	t.Run("cancelled context aborts before the batch write", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, testDB.DB)
		course := testutil.NewCourseBuilder(instructor).Build(t, testDB.DB)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := purchaseService.Purchase(cancelled, buyer, []uuid.UUID{course.UUID})
		assert.Error(t, err)
		assert.EqualValues(t, 0, countPurchases(t, testDB))
	})
}
