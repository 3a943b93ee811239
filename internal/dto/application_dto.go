package dto

import (
	"time"

	"github.com/fadilmartias/careers/internal/model"
)

// SubmitApplicationRequest is the body of POST /applications. Unknown keys
// such as id, status or created_at are dropped by the decoder.
type SubmitApplicationRequest struct {
	Name                      string `json:"name"`
	Email                     string `json:"email"`
	PhoneNumber               string `json:"phone_number"`
	PhoneNumber2              string `json:"phone_number_2,omitempty"`
	CurrentResidence          string `json:"current_residence"`
	CVURL                     string `json:"cv_url,omitempty"`
	CVLivePreviewURL          string `json:"cv_live_preview_url,omitempty"`
	CoverLetterText           string `json:"cover_letter_text,omitempty"`
	CoverLetterURL            string `json:"cover_letter_url,omitempty"`
	CoverLetterLivePreviewURL string `json:"cover_letter_live_preview_url,omitempty"`
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ApplicationStatsDTO struct {
	Total           int `json:"total"`
	WithCoverLetter int `json:"with_cover_letter"`
	ThisMonth       int `json:"this_month"`
	WithCV          int `json:"with_cv"`
}

// SubmittedEvent is published after an application has been stored.
type SubmittedEvent struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	CurrentResidence string    `json:"current_residence"`
	HasCV            bool      `json:"has_cv"`
	HasCoverLetter   bool      `json:"has_cover_letter"`
	CreatedAt        time.Time `json:"created_at"`
}
