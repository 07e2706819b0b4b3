package ingest

import "errors"

// Sentinel kinds for ingestion errors. Both are transport-level: the
// source itself could not be read, as opposed to rows failing
// validation downstream.
var (
	ErrUnreadable    = errors.New("source unreadable")
	ErrMissingHeader = errors.New("missing header row")
)
