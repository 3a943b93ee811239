// Package applicant is the applicant side of the careers flow: it uploads
// the attached documents and then submits the application to the API.
package applicant

import (
	"mime"
	"path/filepath"
	"strings"
)

// FileInput is a document picked by the applicant.
type FileInput struct {
	Name        string
	ContentType string
	Data        []byte
}

// MimeType returns ContentType, or a type guessed from the file extension.
func (f *FileInput) MimeType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	switch ext := strings.ToLower(filepath.Ext(f.Name)); ext {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}

type Form struct {
	Name             string
	Email            string
	PhoneNumber      string
	PhoneNumber2     string
	CurrentResidence string
	CV               *FileInput
	CoverLetterText  string
	CoverLetterFile  *FileInput
}

// Missing lists the required fields that are empty or whitespace only,
// using their API names.
func (f *Form) Missing() []string {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"name", f.Name},
		{"email", f.Email},
		{"phone_number", f.PhoneNumber},
		{"current_residence", f.CurrentResidence},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Reset clears every field, as after a successful submission.
func (f *Form) Reset() {
	*f = Form{}
}
