package service

import "errors"

// Sentinel kinds for pipeline errors. These distinguish the two
// dataset-level failure modes: a source that could not be read at all
// (ingest.ErrUnreadable, wrapped) and a readable source whose rows all
// failed validation.
var (
	ErrNoValidRows     = errors.New("no valid rows after sanitization")
	ErrSuperseded      = errors.New("load superseded by a newer load")
	ErrNoBundledSource = errors.New("no bundled data path configured")
)
