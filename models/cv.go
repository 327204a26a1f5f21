package models

import "time"

// DefaultCVURL is served when no CV has ever been uploaded.
const DefaultCVURL = "/cv.pdf"

// PDFContentType is the only document type accepted for the CV slot.
const PDFContentType = "application/pdf"

// CVDocument is the single "current CV" slot. Uploading replaces it.
type CVDocument struct {
	StorageKey  string    `json:"-" db:"storage_key"`
	Filename    string    `json:"filename" db:"filename"`
	ContentType string    `json:"content_type" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	URL         string    `json:"url" db:"-"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}
