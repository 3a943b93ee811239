package usecase

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/metrics"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/repository"
	"github.com/fadilmartias/careers/internal/response"
	"github.com/fadilmartias/careers/internal/review"
	"github.com/fadilmartias/careers/internal/service"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ApplicationUsecase struct {
	repo     *repository.ApplicationRepository
	notifier service.NotifierInterface
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewApplicationUsecase(repo *repository.ApplicationRepository, notifier service.NotifierInterface, log logrus.FieldLogger) *ApplicationUsecase {
	if notifier == nil {
		notifier = service.NoopNotifier{}
	}
	return &ApplicationUsecase{repo: repo, notifier: notifier, log: log, now: time.Now}
}

// Submit validates req and stores it as a new application with status new.
// Nothing is written when validation fails.
func (uc *ApplicationUsecase) Submit(ctx context.Context, req dto.SubmitApplicationRequest) (*model.JobApplication, error) {
	app, err := NormalizeSubmission(req)
	if err != nil {
		metrics.ApplicationSubmitted("invalid")
		return nil, err
	}

	if err := uc.repo.Create(ctx, app); err != nil {
		metrics.ApplicationSubmitted("failed")
		return nil, util.PersistenceError("Failed to save application", err)
	}
	metrics.ApplicationSubmitted("created")

	if err := uc.notifier.ApplicationSubmitted(ctx, app); err != nil {
		uc.log.WithField("id", app.ID.String()).WithError(err).Warn("submitted event not published")
	}
	return app, nil
}

// NormalizeSubmission builds the record to insert. Required fields are kept
// as sent; blank optionals become "" and file references are completed or
// dropped as a pair.
func NormalizeSubmission(req dto.SubmitApplicationRequest) (*model.JobApplication, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return nil, util.ValidationError("Missing required fields", map[string]any{"missing_fields": missing})
	}

	var invalid []string
	for field, raw := range map[string]string{
		"cv_url":                        req.CVURL,
		"cv_live_preview_url":           req.CVLivePreviewURL,
		"cover_letter_url":              req.CoverLetterURL,
		"cover_letter_live_preview_url": req.CoverLetterLivePreviewURL,
	} {
		if !validURL(raw) {
			invalid = append(invalid, field)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, util.ValidationError("Invalid file URL", map[string]any{"invalid_fields": invalid})
	}

	app := &model.JobApplication{
		Name:             req.Name,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		PhoneNumber2:     strings.TrimSpace(req.PhoneNumber2),
		CurrentResidence: req.CurrentResidence,
		Status:           model.StatusNew,
	}
	if note := model.TextAttachment(req.CoverLetterText); note.Present() {
		app.CoverLetterText = note.Text
	}
	app.SetCV(model.FileAttachment(req.CVURL, req.CVLivePreviewURL))
	app.SetCoverLetterFile(model.FileAttachment(req.CoverLetterURL, req.CoverLetterLivePreviewURL))
	return app, nil
}

func missingFields(req dto.SubmitApplicationRequest) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"phone_number", req.PhoneNumber},
		{"current_residence", req.CurrentResidence},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// validURL accepts blanks; anything else must be an absolute http(s) URL.
func validURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// List returns every application, newest first.
func (uc *ApplicationUsecase) List(ctx context.Context) ([]model.JobApplication, error) {
	apps, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, util.PersistenceError("Failed to load applications", err)
	}
	if apps == nil {
		apps = []model.JobApplication{}
	}
	return apps, nil
}

func (uc *ApplicationUsecase) Get(ctx context.Context, id string) (*model.JobApplication, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, util.NotFoundError("Application not found")
	}
	app, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, uc.lookupError(err)
	}
	return app, nil
}

// UpdateStatus changes the status of one application and returns it as
// stored. Any transition between known statuses is allowed.
func (uc *ApplicationUsecase) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.JobApplication, error) {
	if !status.Valid() {
		return nil, util.ValidationError("Invalid status", map[string]any{"allowed": model.Statuses})
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, util.NotFoundError("Application not found")
	}
	app, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, uc.lookupError(err)
	}
	metrics.StatusUpdated(string(status))
	return app, nil
}

func (uc *ApplicationUsecase) Stats(ctx context.Context) (*dto.ApplicationStatsDTO, error) {
	apps, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := review.Summarize(apps, uc.now())
	return &stats, nil
}

// Search filters the full set with the dashboard rules and returns one page
// of the result.
func (uc *ApplicationUsecase) Search(ctx context.Context, term string, page, pageSize int) ([]model.JobApplication, *response.Pagination, error) {
	apps, err := uc.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	if pageSize <= 0 {
		pageSize = review.DefaultPageSize
	}

	filtered := review.Filter(apps, term)
	page = review.ClampPage(page, review.PageCount(len(filtered), pageSize))
	return review.Paginate(filtered, page, pageSize), response.NewPagination(page, pageSize, len(filtered)), nil
}

func (uc *ApplicationUsecase) lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NotFoundError("Application not found")
	}
	return util.PersistenceError("Failed to load application", err)
}
