package services

import "errors"

// Run errors
var (
	// ErrNoInputFiles is the cause of the validation error returned for an empty file list.
	ErrNoInputFiles = errors.New("no input files")
)
