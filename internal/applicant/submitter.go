package applicant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/service"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ProgressFunc is told which file is uploading and how far along it is.
type ProgressFunc func(fileName string, percent float64)

type SubmitResult struct {
	Message     string
	Application model.JobApplication
}

// Submitter uploads attachments and then creates the application. Steps
// run one after the other and nothing is retried.
type Submitter struct {
	uploader service.StorageServiceInterface
	api      *resty.Client
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewSubmitter(apiURL string, uploader service.StorageServiceInterface, log logrus.FieldLogger) *Submitter {
	return &Submitter{
		uploader: uploader,
		api: resty.New().
			SetBaseURL(strings.TrimSuffix(apiURL, "/")).
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json"),
		log: log,
		now: time.Now,
	}
}

// Submit sends form. On success the form is reset. If an upload fails the
// API is never called.
func (s *Submitter) Submit(ctx context.Context, form *Form, progress ProgressFunc) (*SubmitResult, error) {
	if missing := form.Missing(); len(missing) > 0 {
		return nil, util.ValidationError("Missing required fields", map[string]any{"missing_fields": missing})
	}
	for _, file := range []*FileInput{form.CV, form.CoverLetterFile} {
		if file == nil {
			continue
		}
		if err := util.ValidateDocument(file.Name, file.Data); err != nil {
			return nil, err
		}
	}
	if s.uploader == nil && (form.CV != nil || form.CoverLetterFile != nil) {
		return nil, util.UploadError("file uploads are not configured", nil)
	}

	cv, err := s.upload(ctx, CategoryCV, form.CV, progress)
	if err != nil {
		return nil, err
	}
	coverLetter, err := s.upload(ctx, CategoryCoverLetter, form.CoverLetterFile, progress)
	if err != nil {
		return nil, err
	}

	req := Payload(form, cv, coverLetter)
	resp, err := s.api.R().
		SetContext(ctx).
		SetBody(req).
		Post("/applications")
	if err != nil {
		return nil, util.NetworkError("could not reach the server", err)
	}
	if resp.IsError() {
		return nil, util.FromAPIResponse(resp.StatusCode(), resp.String())
	}

	result := &SubmitResult{Message: gjson.Get(resp.String(), "message").String()}
	if raw := gjson.Get(resp.String(), "data").Raw; raw != "" {
		if err := json.Unmarshal([]byte(raw), &result.Application); err != nil {
			return nil, util.InternalError("Internal server error", fmt.Errorf("decode application: %w", err))
		}
	}

	form.Reset()
	return result, nil
}

func (s *Submitter) upload(ctx context.Context, category string, file *FileInput, progress ProgressFunc) (model.Attachment, error) {
	if file == nil {
		return model.NoAttachment(), nil
	}

	key := ObjectKey(category, file.Name, s.now())
	var report service.ProgressFunc
	if progress != nil {
		report = func(percent float64) { progress(file.Name, percent) }
	}

	s.log.WithFields(logrus.Fields{"file": file.Name, "key": key}).Debug("uploading")
	att, err := s.uploader.Upload(ctx, key, file.Data, file.MimeType(), report)
	if err != nil {
		if util.KindOf(err) != util.KindUpload {
			err = util.UploadError("upload failed, please try again", err)
		}
		return model.NoAttachment(), err
	}
	return att, nil
}

// Payload is the request body for form. Required fields go as typed,
// blank optional fields are left out.
func Payload(form *Form, cv, coverLetter model.Attachment) dto.SubmitApplicationRequest {
	req := dto.SubmitApplicationRequest{
		Name:             form.Name,
		Email:            form.Email,
		PhoneNumber:      form.PhoneNumber,
		CurrentResidence: form.CurrentResidence,
		PhoneNumber2:     strings.TrimSpace(form.PhoneNumber2),
	}
	if note := model.TextAttachment(form.CoverLetterText); note.Present() {
		req.CoverLetterText = note.Text
	}
	if cv.Kind == model.AttachmentFile {
		req.CVURL, req.CVLivePreviewURL = cv.URL, cv.PreviewURL
	}
	if coverLetter.Kind == model.AttachmentFile {
		req.CoverLetterURL, req.CoverLetterLivePreviewURL = coverLetter.URL, coverLetter.PreviewURL
	}
	return req
}
