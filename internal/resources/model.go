// Package resources serves the downloadable library: whitepapers, templates
// and case studies stored in S3 and indexed in Postgres.
package resources

import (
	"errors"
	"time"
)

// ErrResourceNotFound is returned when no published resource matches the id.
var ErrResourceNotFound = errors.New("resource not found")

// Resource is one downloadable item. ObjectKey points into the private
// bucket; clients only ever see short-lived presigned URLs.
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	FileName    string    `json:"file_name"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	IsPublished bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
