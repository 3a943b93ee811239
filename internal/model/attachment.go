package model

import "strings"

type AttachmentKind string

const (
	AttachmentAbsent AttachmentKind = "absent"
	AttachmentText   AttachmentKind = "text"
	AttachmentFile   AttachmentKind = "file"
)

// Attachment is either absent, free text, or a file reference with both its
// storage URL and its preview URL set. Build it with the constructors; a
// half-filled file reference cannot be produced by them.
type Attachment struct {
	Kind       AttachmentKind `json:"kind"`
	Text       string         `json:"text,omitempty"`
	URL        string         `json:"url,omitempty"`
	PreviewURL string         `json:"preview_url,omitempty"`
}

func NoAttachment() Attachment {
	return Attachment{Kind: AttachmentAbsent}
}

func TextAttachment(text string) Attachment {
	if strings.TrimSpace(text) == "" {
		return NoAttachment()
	}
	return Attachment{Kind: AttachmentText, Text: text}
}

// FileAttachment builds a file reference. The object store serves uploads
// from their public URL, so a missing preview URL falls back to the storage
// URL and vice versa.
func FileAttachment(url, previewURL string) Attachment {
	url, previewURL = strings.TrimSpace(url), strings.TrimSpace(previewURL)
	switch {
	case url == "" && previewURL == "":
		return NoAttachment()
	case url == "":
		url = previewURL
	case previewURL == "":
		previewURL = url
	}
	return Attachment{Kind: AttachmentFile, URL: url, PreviewURL: previewURL}
}

func (a Attachment) Present() bool {
	return a.Kind == AttachmentText || a.Kind == AttachmentFile
}

func (a Attachment) fileFields() (string, string) {
	if a.Kind != AttachmentFile {
		return "", ""
	}
	return a.URL, a.PreviewURL
}
