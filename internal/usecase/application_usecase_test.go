package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/logger"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/repository"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingNotifier struct {
	events []string
	err    error
}

func (n *recordingNotifier) ApplicationSubmitted(ctx context.Context, app *model.JobApplication) error {
	n.events = append(n.events, app.ID.String())
	return n.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.JobApplication{}))
	return db
}

func newApplicationUsecase(t *testing.T) (*ApplicationUsecase, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	uc := NewApplicationUsecase(repository.NewApplicationRepository(newTestDB(t)), notifier, logger.Discard())
	return uc, notifier
}

func minimalRequest() dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		Name:             "A",
		Email:            "a@b.com",
		PhoneNumber:      "123",
		CurrentResidence: "X",
	}
}

func TestSubmitMinimalApplication(t *testing.T) {
	uc, notifier := newApplicationUsecase(t)
	ctx := context.Background()

	app, err := uc.Submit(ctx, minimalRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, app.ID)
	assert.False(t, app.CreatedAt.IsZero())
	assert.Equal(t, []string{app.ID.String()}, notifier.events)

	stored, err := uc.Get(ctx, app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "A", stored.Name)
	assert.Equal(t, "a@b.com", stored.Email)
	assert.Equal(t, "123", stored.PhoneNumber)
	assert.Equal(t, "X", stored.CurrentResidence)
	assert.Equal(t, "", stored.CVURL)
	assert.Equal(t, "", stored.CoverLetterText)
	assert.Equal(t, "", stored.CoverLetterURL)
	assert.Equal(t, model.StatusNew, stored.Status)
}

func TestSubmitMissingFieldsWritesNothing(t *testing.T) {
	uc, notifier := newApplicationUsecase(t)
	ctx := context.Background()

	req := minimalRequest()
	req.Email = ""
	req.CurrentResidence = "   "

	_, err := uc.Submit(ctx, req)
	require.Error(t, err)

	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, util.KindValidation, appErr.Kind)
	assert.Equal(t, "Missing required fields", appErr.Message)
	assert.Equal(t, map[string]any{"missing_fields": []string{"email", "current_residence"}}, appErr.Details)

	apps, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.Empty(t, notifier.events)
}

func TestSubmitIgnoresClientStatusAndNormalizesAttachments(t *testing.T) {
	uc, _ := newApplicationUsecase(t)

	req := minimalRequest()
	req.PhoneNumber2 = "  "
	req.CoverLetterText = "\n\t"
	req.CVURL = "https://cdn.example.com/cvs/1_a.pdf"
	req.CoverLetterLivePreviewURL = "https://cdn.example.com/cover_letters/1_b.pdf"

	app, err := uc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "", app.PhoneNumber2)
	assert.Equal(t, "", app.CoverLetterText)
	assert.Equal(t, req.CVURL, app.CVLivePreviewURL)
	assert.Equal(t, req.CoverLetterLivePreviewURL, app.CoverLetterURL)
	assert.True(t, app.HasCoverLetter())
}

func TestSubmitRejectsMalformedURLs(t *testing.T) {
	uc, _ := newApplicationUsecase(t)

	req := minimalRequest()
	req.CVURL = "javascript:alert(1)"
	req.CoverLetterURL = "not a url"

	_, err := uc.Submit(context.Background(), req)
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, util.KindValidation, appErr.Kind)
	assert.Equal(t, map[string]any{"invalid_fields": []string{"cover_letter_url", "cv_url"}}, appErr.Details)
}

func TestSubmitSucceedsWhenNotifierFails(t *testing.T) {
	uc, notifier := newApplicationUsecase(t)
	notifier.err = errors.New("nats: connection closed")

	app, err := uc.Submit(context.Background(), minimalRequest())
	require.NoError(t, err)
	assert.NotNil(t, app)
}

func TestSubmitPersistenceFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	mock.ExpectExec(`INSERT INTO "job_applications"`).WillReturnError(errors.New("pq: password authentication failed"))

	notifier := &recordingNotifier{}
	uc := NewApplicationUsecase(repository.NewApplicationRepository(db), notifier, logger.Discard())

	_, err = uc.Submit(context.Background(), minimalRequest())
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindPersistence))
	assert.Equal(t, "Failed to save application", util.UserMessage(err))
	assert.Empty(t, notifier.events)
}

func TestUpdateStatus(t *testing.T) {
	uc, _ := newApplicationUsecase(t)
	ctx := context.Background()

	app, err := uc.Submit(ctx, minimalRequest())
	require.NoError(t, err)

	for _, status := range []model.Status{model.StatusHired, model.StatusNew, model.StatusRejected} {
		updated, err := uc.UpdateStatus(ctx, app.ID.String(), status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = uc.UpdateStatus(ctx, app.ID.String(), "archived")
	assert.True(t, util.IsKind(err, util.KindValidation))

	_, err = uc.UpdateStatus(ctx, uuid.NewString(), model.StatusHired)
	assert.True(t, util.IsKind(err, util.KindNotFound))

	_, err = uc.UpdateStatus(ctx, "not-a-uuid", model.StatusHired)
	assert.True(t, util.IsKind(err, util.KindNotFound))

	stored, err := uc.Get(ctx, app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, stored.Status)
	assert.True(t, app.CreatedAt.Equal(stored.CreatedAt))
}

func TestStatsAndSearch(t *testing.T) {
	uc, _ := newApplicationUsecase(t)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Bob", "Anabel"} {
		req := minimalRequest()
		req.Name = name
		if name == "Bob" {
			req.CoverLetterText = "hi"
		}
		_, err := uc.Submit(ctx, req)
		require.NoError(t, err)
	}

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.WithCoverLetter)
	assert.Equal(t, 3, stats.ThisMonth)
	assert.Equal(t, 0, stats.WithCV)

	page, pagination, err := uc.Search(ctx, "ana", 5, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 2, pagination.Page)
	assert.EqualValues(t, 2, pagination.TotalItems)
	assert.EqualValues(t, 2, pagination.TotalPages)
	assert.False(t, pagination.HasMore)

	page, pagination, err = uc.Search(ctx, "", 1, 0)
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.Equal(t, 8, pagination.PageSize)
}
