// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("listing not found")
	ErrTooManyFiles = errors.New("too many files")
	ErrUploadFailed = errors.New("upload failed")
)

// TooManyFilesError carries the per-request limit that was exceeded.
type TooManyFilesError struct {
	Count int
	Limit int
}

func (e *TooManyFilesError) Error() string {
	return fmt.Sprintf("too many files: got %d, limit %d", e.Count, e.Limit)
}

func (e *TooManyFilesError) Unwrap() error {
	return ErrTooManyFiles
}
