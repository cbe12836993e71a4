package commands

import (
	"errors"
	"fmt"

	"freshmarket/internal/core/domain/model/actor"
	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/core/domain/model/status"
	"freshmarket/internal/pkg/errs"
	"freshmarket/internal/pkg/guard"
)

var (
	ErrUpdateStatusCommandIsNotConstructed = errors.New(
		"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
	)
)

// RecordKind selects which side of an order/delivery pair a status update
// targets. The update is applied to that record first; the counterpart is
// converged afterwards by best-effort propagation.
type RecordKind int

const (
	// RecordUnknown represents an invalid record kind.
	RecordUnknown RecordKind = iota

	// RecordOrder targets the commercial order record.
	RecordOrder

	// RecordDelivery targets the fulfillment delivery record.
	RecordDelivery
)

// Validate checks that the record kind is one of the defined kinds.
func (k RecordKind) Validate() error {
	if k != RecordOrder && k != RecordDelivery {
		return errs.NewValueIsInvalidErrorWithCause("recordKind",
			fmt.Errorf("%d is not a valid record kind", k))
	}
	return nil
}

// UpdateStatusCommand represents a request to move an order or delivery to
// a new lifecycle status.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	kind      RecordKind
	recordID  kernel.UUID
	requested status.Status
	note      string
	requester actor.Actor

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a status update command.
// The requested status must be a valid lifecycle status; whether the
// transition is legal from the record's current status is decided by the
// handler after loading the record.
func NewUpdateStatusCommand(
	kind RecordKind,
	recordID kernel.UUID,
	requested status.Status,
	note string,
	requester actor.Actor,
) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setRecordID(recordID),
		cmd.setRequested(requested),
		cmd.setRequester(requester),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// Kind returns which record the update targets.
func (c UpdateStatusCommand) Kind() RecordKind {
	return c.kind
}

// RecordID returns the targeted record's unique identifier.
func (c UpdateStatusCommand) RecordID() kernel.UUID {
	return c.recordID
}

// Requested returns the requested lifecycle status.
func (c UpdateStatusCommand) Requested() status.Status {
	return c.requested
}

// Note returns the optional free-text note for the ledger entry.
func (c UpdateStatusCommand) Note() string {
	return c.note
}

// Requester returns the actor driving the transition.
func (c UpdateStatusCommand) Requester() actor.Actor {
	return c.requester
}

func (c *UpdateStatusCommand) setKind(kind RecordKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *UpdateStatusCommand) setRecordID(recordID kernel.UUID) error {
	if err := recordID.Validate(); err != nil {
		return err
	}
	c.recordID = recordID
	return nil
}

func (c *UpdateStatusCommand) setRequested(requested status.Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}
	c.requested = requested
	return nil
}

func (c *UpdateStatusCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
