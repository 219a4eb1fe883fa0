package database

import (
	"context"
	"testing"

	"github.com/paleotommytechy/portfolio/errs"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	return New(openTestDB(t))
}

// openTestDB returns a migrated in-memory sqlite handle closed at cleanup.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

func TestTableNames(t *testing.T) {
	d := newTestDB(t)
	assert.Equal(t, "services", d.Services().Name())
	assert.Equal(t, "projects", d.Projects().Name())
	assert.Equal(t, "case_studies", d.CaseStudies().Name())
	assert.Equal(t, "testimonials", d.Testimonials().Name())
}

func TestTableAddAssignsServerIDs(t *testing.T) {
	ctx := context.Background()
	projects := newTestDB(t).Projects()

	first, err := projects.Add(ctx, models.GalleryProject{ID: 999, Title: "EcoTrack", Category: "IoT", Tech: []string{"Go"}})
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotEqual(t, int64(999), first.ID)
	assert.NotZero(t, first.ID)

	second, err := projects.Add(ctx, models.GalleryProject{Title: "StudentHub", Category: "Fullstack"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := projects.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTableFindByID(t *testing.T) {
	ctx := context.Background()
	services := newTestDB(t).Services()

	created, err := services.Add(ctx, models.Service{Title: "Branding", Desc: "identity"})
	require.NoError(t, err)

	found, err := services.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *created, *found)

	missing, err := services.FindByID(ctx, created.ID+100)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Nil(t, missing)
}

func TestTableUpdateReplacesAllFields(t *testing.T) {
	ctx := context.Background()
	studies := newTestDB(t).CaseStudies()

	created, err := studies.Add(ctx, models.CaseStudy{
		Title: "Old", Category: "Web", Problem: "slow", ProjectLink: "https://old", Tech: []string{"React"},
	})
	require.NoError(t, err)

	updated, err := studies.Update(ctx, created.ID, models.CaseStudy{Title: "New", Category: "Embedded"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Embedded", updated.Category)
	assert.Empty(t, updated.Problem)
	assert.Empty(t, updated.ProjectLink)
	assert.Empty(t, updated.Tech)

	none, err := studies.Update(ctx, created.ID+100, models.CaseStudy{Title: "x", Category: "y"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Nil(t, none)
}

func TestTableDelete(t *testing.T) {
	ctx := context.Background()
	testimonials := newTestDB(t).Testimonials()

	a, err := testimonials.Add(ctx, models.Testimonial{Quote: "Great work", Author: "A", Company: "B"})
	require.NoError(t, err)
	b, err := testimonials.Add(ctx, models.Testimonial{Quote: "Fast", Author: "C", Company: "D"})
	require.NoError(t, err)

	require.NoError(t, testimonials.Delete(ctx, a.ID))
	require.NoError(t, testimonials.Delete(ctx, a.ID))

	all, err := testimonials.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestTableErrorsAreDatabaseErrors(t *testing.T) {
	db := openTestDB(t)
	d := New(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = d.Services().FindAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}
