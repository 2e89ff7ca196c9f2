package store

import "errors"

var (
	// ErrDuplicateKind is returned by AddKind when the code is already
	// registered for that log. The existing kind is left untouched.
	ErrDuplicateKind = errors.New("kind code already exists")

	// ErrInvalidMagnitude is returned by UpsertDaySummary when a rating
	// falls outside [1,10]. The whole summary is rolled back.
	ErrInvalidMagnitude = errors.New("rating magnitude must be between 1 and 10")

	// ErrInsertFailed is returned when an insert reports no affected row.
	ErrInsertFailed = errors.New("insert reported no new row")
)
