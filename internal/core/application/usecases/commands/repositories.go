// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freshmarket/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// ListingRepoFactory provides access to the listing repository within a transaction.
	ListingRepoFactory interface {
		ListingRepository() ports.ListingRepository
	}

	// UoW manages transactions across the order, delivery, and listing
	// aggregates. Order creation writes all three in one transaction;
	// status updates write one record per transaction, with the
	// counterpart handled in its own follow-up transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		ListingRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	// Each command execution gets a fresh, isolated unit of work.
	UoWFactory interface {
		Create() UoW
	}
)
