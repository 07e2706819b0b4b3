package repository

import "errors"

// Sentinel kinds for dataset store errors.
var (
	// ErrNoDataset marks reads that require a snapshot before the
	// first successful load.
	ErrNoDataset = errors.New("no dataset loaded")
)
