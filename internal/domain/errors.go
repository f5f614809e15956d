package domain

import "errors"

var (
	ErrUnsupportedFormat = errors.New("extraction not supported for this format")
	ErrEmptyDocument     = errors.New("document contains no text")
	ErrNotFound          = errors.New("resource not found")
)
