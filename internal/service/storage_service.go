package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ProgressFunc receives the upload progress of one file in percent.
type ProgressFunc func(percent float64)

type StorageServiceInterface interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string, progress ProgressFunc) (model.Attachment, error)
	PublicURL(objectPath string) string
}

// StorageService talks to a Supabase-compatible storage REST API.
type StorageService struct {
	client  *resty.Client
	baseURL string
	bucket  string
}

func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("STORAGE_URL not set")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("STORAGE_KEY not set")
	}
	baseURL := strings.TrimSuffix(cfg.URL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2*time.Minute).
		SetHeader("apikey", cfg.APIKey).
		SetAuthToken(cfg.APIKey)

	return &StorageService{
		client:  client,
		baseURL: baseURL,
		bucket:  cfg.Bucket,
	}, nil
}

// Upload stores data under objectPath and returns the file reference of the
// new object. Existing objects are never overwritten.
func (s *StorageService) Upload(ctx context.Context, objectPath string, data []byte, contentType string, progress ProgressFunc) (model.Attachment, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var body io.Reader = bytes.NewReader(data)
	if progress != nil {
		body = &progressReader{r: body, total: int64(len(data)), fn: progress}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Cache-Control", "max-age=3600").
		SetHeader("x-upsert", "false").
		SetBody(body).
		Post(fmt.Sprintf("/storage/v1/object/%s/%s", s.bucket, objectPath))
	if err != nil {
		return model.NoAttachment(), util.UploadError("upload failed, please try again", err)
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "message").String()
		if msg == "" {
			msg = gjson.GetBytes(resp.Body(), "error").String()
		}
		if msg == "" {
			msg = resp.Status()
		}
		return model.NoAttachment(), util.UploadError("upload failed: "+msg, fmt.Errorf("storage responded %d", resp.StatusCode()))
	}

	if progress != nil {
		progress(100)
	}
	url := s.PublicURL(objectPath)
	return model.FileAttachment(url, url), nil
}

func (s *StorageService) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}

type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		p.fn(float64(p.read) * 100 / float64(p.total))
	}
	return n, err
}
