package models

import (
	"errors"
	"time"
)

const (
	MinATSScore = 0
	MaxATSScore = 100
)

var (
	ErrInvalidScore = errors.New("ATS score must be within [0,100]")
	ErrMissingID    = errors.New("document id must not be empty")
)

// Document is a generated CV. ID never changes once assigned; Body and
// GeneratedAt are replaced together on each revision, and JobDescription
// stays the text the document was first generated from.
type Document struct {
	ID             string    `json:"id"`
	JobDescription string    `json:"jobDescription"`
	Body           string    `json:"markdown"`
	ATSScore       int       `json:"atsScore"`
	GeneratedAt    time.Time `json:"generatedDate"`
}

// Revised returns a copy of d carrying the new body and timestamp.
func (d Document) Revised(body string, at time.Time) Document {
	d.Body = body
	d.GeneratedAt = at
	return d
}

// Validate checks the invariants the store relies on.
func (d Document) Validate() error {
	if d.ID == "" {
		return ErrMissingID
	}
	if d.ATSScore < MinATSScore || d.ATSScore > MaxATSScore {
		return ErrInvalidScore
	}
	return nil
}

// FileName is the download name used for exports, e.g. cv_<id>.md.
func (d Document) FileName(ext string) string {
	return "cv_" + d.ID + "." + ext
}
