package store

import (
	"context"
	"testing"

	"fitclub-backend/database"
	"fitclub-backend/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	course := catalog.Course{Name: "Course", Slug: "course"}
	require.NoError(t, db.Create(&course).Error)
	pkg := catalog.Package{Name: "Pkg", PriceEUR: 10, CourseID: course.ID, PaymentMode: catalog.PaymentModeOneTime}
	require.NoError(t, db.Create(&pkg).Error)

	return New(db), db
}

func TestCreateVideoNextIndexStartsAtOne(t *testing.T) {
	st, _ := testStore(t)

	v := &catalog.Video{Title: "First", BunnyVideoID: "guid-1", PackageID: 1}
	require.NoError(t, st.CreateVideoNextIndex(context.Background(), v))
	assert.Equal(t, 1, v.OrderIndex)
}

func TestCreateVideoNextIndexIncrements(t *testing.T) {
	st, _ := testStore(t)

	for want := 1; want <= 4; want++ {
		v := &catalog.Video{Title: "V", BunnyVideoID: "guid", PackageID: 1}
		require.NoError(t, st.CreateVideoNextIndex(context.Background(), v))
		assert.Equal(t, want, v.OrderIndex)
	}
}

// The retry in CreateVideoNextIndex leans on the composite unique index
// translating to gorm.ErrDuplicatedKey; make sure the schema and the driver
// actually deliver that.
func TestDuplicateOrderIndexIsRejectedAsDuplicatedKey(t *testing.T) {
	st, db := testStore(t)

	v := &catalog.Video{Title: "First", BunnyVideoID: "guid-1", PackageID: 1}
	require.NoError(t, st.CreateVideoNextIndex(context.Background(), v))

	dup := &catalog.Video{Title: "Clash", BunnyVideoID: "guid-2", PackageID: 1, OrderIndex: v.OrderIndex}
	err := db.Create(dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestListVideosByPackageOrdersByIndex(t *testing.T) {
	st, _ := testStore(t)

	titles := []string{"One", "Two", "Three"}
	for _, title := range titles {
		v := &catalog.Video{Title: title, BunnyVideoID: "guid", PackageID: 1}
		require.NoError(t, st.CreateVideoNextIndex(context.Background(), v))
	}

	vids, err := st.ListVideosByPackage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, vids, 3)
	for i, v := range vids {
		assert.Equal(t, i+1, v.OrderIndex)
		assert.Equal(t, titles[i], v.Title)
	}
}
