package models

import "errors"

// Error taxonomy for a single analysis request. Callers wrap these with
// fmt.Errorf("...: %w", ...) and handlers map them to HTTP status codes.
var (
	// ErrInvalidImage marks input that could not be decoded as an image.
	ErrInvalidImage = errors.New("invalid or undecodable image")

	// ErrModelUnavailable marks a classifier that could not be reached
	// or is still loading. The detector retries once with the fallback
	// model before surfacing this.
	ErrModelUnavailable = errors.New("detection model unavailable")

	// ErrUploadTooLarge marks an upload rejected before processing.
	ErrUploadTooLarge = errors.New("upload exceeds size limit")

	// ErrTransientIO marks a temp file read/write failure.
	ErrTransientIO = errors.New("transient I/O failure")
)
