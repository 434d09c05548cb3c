package ports

import (
	"context"

	"github.com/relationhq/relmig/internal/domain/entities"
)

// Store defines the interface to the relational store the migration writes
// into. Connection management, transactions and schema ownership live behind
// this interface; the services only see batch reads and writes.
type Store interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Customer operations

	// ListCustomers returns all customers, in no guaranteed order.
	ListCustomers(ctx context.Context) ([]entities.Customer, error)

	// SaveCustomers inserts or updates a batch of customers.
	SaveCustomers(ctx context.Context, customers []entities.Customer) error

	// DeleteAllCustomers removes every customer (and, via the schema,
	// everything that references them).
	DeleteAllCustomers(ctx context.Context) error

	// CountCustomers returns the total number of customers.
	CountCustomers(ctx context.Context) (int, error)

	// Offer operations

	// SaveOffers inserts or updates a batch of offers.
	SaveOffers(ctx context.Context, offers []entities.Offer) error

	// DeleteOffersByCompany removes all offers for a company.
	DeleteOffersByCompany(ctx context.Context, companyID string) (int, error)

	// CountOffersByCompany returns the number of offers for a company.
	CountOffersByCompany(ctx context.Context, companyID string) (int, error)
}
