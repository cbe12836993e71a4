package errs

import "errors"

var (
	// ErrNotFoundOrUnauthorized is returned when a record is absent or the acting
	// user has no relationship to it. The two conditions are deliberately merged
	// so responses never reveal whether a record exists to someone who cannot
	// access it.
	ErrNotFoundOrUnauthorized = errors.New("record not found or not accessible")

	// ErrStatusConflict is returned by a guarded update when the record's status
	// changed between read and write. The caller lost a concurrent race and must
	// re-read before retrying.
	ErrStatusConflict = errors.New("record status changed concurrently")

	// ErrInsufficientStock is returned when an ordered quantity exceeds the
	// listing's available stock at order-creation time.
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
)
