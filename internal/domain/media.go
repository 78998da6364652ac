/**
 * @description
 * Uploaded media metadata. Content endpoints reference media by id instead of
 * embedding files in their own multipart payloads.
 */
package domain

import (
	"github.com/google/uuid"
)

// Media describes one uploaded file stored on disk.
type Media struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StoragePath string    `json:"-"`
	Audit
}
