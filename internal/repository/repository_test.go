package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.JobApplication{}))
	return db
}

func newApplication(name string, createdAt time.Time) *model.JobApplication {
	return &model.JobApplication{
		Name:             name,
		Email:            name + "@example.com",
		PhoneNumber:      "0812",
		CurrentResidence: "Jakarta",
		CreatedAt:        createdAt,
	}
}

func TestApplicationRepositoryCreateAssignsIdentity(t *testing.T) {
	repo := NewApplicationRepository(newTestDB(t))
	ctx := context.Background()

	app := newApplication("ana", time.Time{})
	require.NoError(t, repo.Create(ctx, app))

	assert.NotEqual(t, uuid.Nil, app.ID)
	assert.False(t, app.CreatedAt.IsZero())
	assert.Equal(t, model.StatusNew, app.Status)

	other := newApplication("ben", time.Time{})
	require.NoError(t, repo.Create(ctx, other))
	assert.NotEqual(t, app.ID, other.ID)
}

func TestApplicationRepositoryFindAllNewestFirst(t *testing.T) {
	repo := NewApplicationRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newApplication("oldest", base)))
	require.NoError(t, repo.Create(ctx, newApplication("newest", base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newApplication("middle", base.Add(time.Hour))))

	apps, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "newest", apps[0].Name)
	assert.Equal(t, "middle", apps[1].Name)
	assert.Equal(t, "oldest", apps[2].Name)
}

func TestApplicationRepositoryRoundTripKeepsEmptyOptionals(t *testing.T) {
	repo := NewApplicationRepository(newTestDB(t))
	ctx := context.Background()

	app := newApplication("ana", time.Time{})
	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.FindByID(ctx, app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, app.Name, got.Name)
	assert.Equal(t, app.Email, got.Email)
	assert.Empty(t, got.PhoneNumber2)
	assert.Empty(t, got.CVURL)
	assert.Empty(t, got.CoverLetterText)
	assert.Empty(t, got.CoverLetterURL)
}

func TestApplicationRepositoryUpdateStatus(t *testing.T) {
	repo := NewApplicationRepository(newTestDB(t))
	ctx := context.Background()

	app := newApplication("ana", time.Time{})
	require.NoError(t, repo.Create(ctx, app))

	updated, err := repo.UpdateStatus(ctx, app.ID.String(), model.StatusContacted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusContacted, updated.Status)
	assert.Equal(t, app.Name, updated.Name)
	assert.True(t, app.CreatedAt.Equal(updated.CreatedAt))

	_, err = repo.UpdateStatus(ctx, uuid.NewString(), model.StatusHired)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApplicationRepositoryFindByIDMissing(t *testing.T) {
	repo := NewApplicationRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApplicationRepositoryCreateSurfacesDriverErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "job_applications"`).WillReturnError(errors.New("connection reset by peer"))

	repo := NewApplicationRepository(db)
	err = repo.Create(context.Background(), newApplication("ana", time.Time{}))
	require.Error(t, err)
}
