package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MaxDocumentSize is the largest CV or cover letter accepted for upload.
const MaxDocumentSize = 5 * 1024 * 1024

var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// DocumentExtension returns the lower-cased extension of name without the
// leading dot.
func DocumentExtension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// ValidateDocument checks that an attachment may be uploaded: a known
// extension, a non-empty body within MaxDocumentSize and, for PDFs, a file
// that actually opens with at least one page.
func ValidateDocument(name string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !documentExtensions[ext] {
		return UploadError(fmt.Sprintf("%s: unsupported file type (PDF, DOC or DOCX only)", name), nil)
	}
	if len(data) == 0 {
		return UploadError(fmt.Sprintf("%s: file is empty", name), nil)
	}
	if len(data) > MaxDocumentSize {
		return UploadError(fmt.Sprintf("%s: file size is too large (max 5MB)", name), nil)
	}
	if ext == ".pdf" {
		if _, err := PDFPageCount(data); err != nil {
			return UploadError(fmt.Sprintf("%s: not a readable PDF", name), err)
		}
	}
	return nil
}

// PDFPageCount opens an in-memory PDF and returns its number of pages.
func PDFPageCount(data []byte) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages < 1 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return pages, nil
}
