package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageServiceRequiresConfig(t *testing.T) {
	_, err := NewStorageService(&config.StorageConfig{APIKey: "k", Bucket: "b"})
	assert.Error(t, err)
	_, err = NewStorageService(&config.StorageConfig{URL: "http://x", Bucket: "b"})
	assert.Error(t, err)
}

func TestStorageServiceUpload(t *testing.T) {
	var gotPath, gotKey, gotAuth, gotType, gotUpsert string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Key":"applications/cvs/1_abc.pdf"}`))
	}))
	defer srv.Close()

	svc, err := NewStorageService(&config.StorageConfig{URL: srv.URL + "/", APIKey: "anon", Bucket: "applications"})
	require.NoError(t, err)

	var last float64
	att, err := svc.Upload(context.Background(), "cvs/1_abc.pdf", []byte("%PDF-1.4 body"), "application/pdf", func(p float64) { last = p })
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/applications/cvs/1_abc.pdf", gotPath)
	assert.Equal(t, "anon", gotKey)
	assert.Equal(t, "Bearer anon", gotAuth)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "false", gotUpsert)
	assert.Equal(t, "%PDF-1.4 body", string(gotBody))
	assert.Equal(t, float64(100), last)

	want := srv.URL + "/storage/v1/object/public/applications/cvs/1_abc.pdf"
	assert.Equal(t, model.AttachmentFile, att.Kind)
	assert.Equal(t, want, att.URL)
	assert.Equal(t, want, att.PreviewURL)
}

func TestStorageServiceUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	}))
	defer srv.Close()

	svc, err := NewStorageService(&config.StorageConfig{URL: srv.URL, APIKey: "anon", Bucket: "applications"})
	require.NoError(t, err)

	att, err := svc.Upload(context.Background(), "cvs/x.pdf", []byte("data"), "", nil)
	require.Error(t, err)
	assert.Equal(t, util.KindUpload, util.KindOf(err))
	assert.Contains(t, util.UserMessage(err), "The resource already exists")
	assert.False(t, att.Present())
}

func TestStorageServiceUploadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc, err := NewStorageService(&config.StorageConfig{URL: url, APIKey: "anon", Bucket: "applications"})
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), "cvs/x.pdf", []byte("data"), "application/pdf", nil)
	assert.Equal(t, util.KindUpload, util.KindOf(err))
}

func TestSubmittedEvent(t *testing.T) {
	app := &model.JobApplication{
		Name:            "Ana",
		Email:           "ana@example.com",
		CVURL:           "https://s/cv.pdf",
		CoverLetterText: "hi",
	}
	ev := SubmittedEvent(app)
	assert.True(t, ev.HasCV)
	assert.True(t, ev.HasCoverLetter)
	assert.Equal(t, "Ana", ev.Name)
}
