package service

import "errors"

// ErrMissingConfig is returned before any network call when the remote API
// key or vector store id is not configured.
var ErrMissingConfig = errors.New("missing api key or vector store id")

// ErrSyncInProgress is returned to a second entrant while a run holds the
// single-flight lock.
var ErrSyncInProgress = errors.New("sync already in progress")
