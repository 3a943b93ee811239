package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusReviewed  Status = "reviewed"
	StatusContacted Status = "contacted"
	StatusHired     Status = "hired"
	StatusRejected  Status = "rejected"
)

var Statuses = []Status{StatusNew, StatusReviewed, StatusContacted, StatusHired, StatusRejected}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// JobApplication is one applicant's submission. Optional fields hold "" when
// absent so every key is always present on the wire.
type JobApplication struct {
	ID                        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email                     string    `gorm:"type:varchar(255);not null" json:"email"`
	PhoneNumber               string    `gorm:"type:varchar(50);not null" json:"phone_number"`
	PhoneNumber2              string    `gorm:"type:varchar(50)" json:"phone_number_2"`
	CurrentResidence          string    `gorm:"type:varchar(255);not null" json:"current_residence"`
	CVURL                     string    `gorm:"type:text" json:"cv_url"`
	CVLivePreviewURL          string    `gorm:"type:text" json:"cv_live_preview_url"`
	CoverLetterText           string    `gorm:"type:text" json:"cover_letter_text"`
	CoverLetterURL            string    `gorm:"type:text" json:"cover_letter_url"`
	CoverLetterLivePreviewURL string    `gorm:"type:text" json:"cover_letter_live_preview_url"`
	Status                    Status    `gorm:"type:varchar(20);not null;default:new;index" json:"status"`
	CreatedAt                 time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusNew
	}
	return nil
}

func (a *JobApplication) CV() Attachment {
	return FileAttachment(a.CVURL, a.CVLivePreviewURL)
}

func (a *JobApplication) SetCV(att Attachment) {
	a.CVURL, a.CVLivePreviewURL = att.fileFields()
}

func (a *JobApplication) CoverLetterFile() Attachment {
	return FileAttachment(a.CoverLetterURL, a.CoverLetterLivePreviewURL)
}

func (a *JobApplication) SetCoverLetterFile(att Attachment) {
	a.CoverLetterURL, a.CoverLetterLivePreviewURL = att.fileFields()
}

func (a *JobApplication) CoverLetterNote() Attachment {
	return TextAttachment(a.CoverLetterText)
}

// HasCoverLetter reports whether any cover letter material was supplied.
func (a *JobApplication) HasCoverLetter() bool {
	return a.CoverLetterNote().Present() || a.CoverLetterFile().Present()
}
