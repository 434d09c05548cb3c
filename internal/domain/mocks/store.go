// Package mocks provides hand-written mock implementations of the domain
// ports for use in tests.
package mocks

import (
	"context"

	"github.com/relationhq/relmig/internal/domain/entities"
)

// Store is a mock implementation of ports.Store.
type Store struct {
	Customers []entities.Customer
	Err       error

	SavedCustomers         []entities.Customer
	SaveCustomersCallCount int
	DeleteCustomersCalled  bool

	SavedOffers         []entities.Offer
	SaveOffersCallCount int
	DeletedCompanyID    string
	DeletedOfferCount   int
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *Store) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *Store) Close() error {
	return nil
}

// ListCustomers returns the canned customer list.
func (m *Store) ListCustomers(_ context.Context) ([]entities.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Customers, nil
}

// SaveCustomers records the saved batch.
func (m *Store) SaveCustomers(_ context.Context, customers []entities.Customer) error {
	if m.Err != nil {
		return m.Err
	}
	m.SaveCustomersCallCount++
	m.SavedCustomers = append(m.SavedCustomers, customers...)
	return nil
}

// DeleteAllCustomers marks the clear as performed.
func (m *Store) DeleteAllCustomers(_ context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.DeleteCustomersCalled = true
	m.Customers = nil
	return nil
}

// CountCustomers returns the size of the canned customer list.
func (m *Store) CountCustomers(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Customers), nil
}

// SaveOffers records the saved batch.
func (m *Store) SaveOffers(_ context.Context, offers []entities.Offer) error {
	if m.Err != nil {
		return m.Err
	}
	m.SaveOffersCallCount++
	m.SavedOffers = append(m.SavedOffers, offers...)
	return nil
}

// DeleteOffersByCompany records the cleared company.
func (m *Store) DeleteOffersByCompany(_ context.Context, companyID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.DeletedCompanyID = companyID
	return m.DeletedOfferCount, nil
}

// CountOffersByCompany returns the number of recorded offers.
func (m *Store) CountOffersByCompany(_ context.Context, _ string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.SavedOffers), nil
}
