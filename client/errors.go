package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates malformed input (not a video ID/url).
	ErrInvalidInput = errors.New("invalid input")
	// ErrMetadataNotFound indicates the watch page embeds no playback metadata.
	ErrMetadataNotFound = errors.New("playback metadata not found")
	// ErrTitleMissing indicates the watch page carries no title heading.
	ErrTitleMissing = errors.New("title missing")
	// ErrTitleAmbiguous indicates the watch page carries more than one title heading.
	ErrTitleAmbiguous = errors.New("title ambiguous")
	// ErrResourceNotFound indicates no media stream matches the request.
	ErrResourceNotFound = errors.New("no matching media resource")
	// ErrQualityLabelMissing indicates a quality id with no catalog label.
	ErrQualityLabelMissing = errors.New("quality label missing")
)

// DecodeError indicates playback metadata that does not match the expected
// shape. Field is the dotted path of the offending member, when known.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode metadata: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decode metadata: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
