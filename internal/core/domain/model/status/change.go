package status

import "time"

// Change is a single entry in a record's status ledger: the status entered,
// when, by whom, and an optional free-text note. Entries are append-only and
// never edited or removed once written.
type Change struct {
	Status Status
	At     time.Time
	By     string
	Note   string
}

// NewChange creates a ledger entry for the given status stamped with the
// current UTC time.
func NewChange(s Status, by, note string) Change {
	return Change{
		Status: s,
		At:     time.Now().UTC(),
		By:     by,
		Note:   note,
	}
}

// AppendChange appends an entry to a ledger, initializing the ledger first
// when it is nil. Older records have been observed with a missing history
// field, so the nil case must heal rather than fail.
func AppendChange(ledger []Change, c Change) []Change {
	if ledger == nil {
		ledger = make([]Change, 0, 1)
	}
	return append(ledger, c)
}
