// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/relationhq/relmig/internal/domain/entities"
	"github.com/relationhq/relmig/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		org_number TEXT,
		email TEXT,
		phone TEXT,
		address TEXT,
		city TEXT,
		postal_code TEXT,
		country TEXT,
		contact_person TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		customer_class TEXT,
		credit_limit REAL,
		is_internal INTEGER NOT NULL DEFAULT 0,
		municipality TEXT,
		county TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name);
	CREATE INDEX IF NOT EXISTS idx_customers_org ON customers(org_number);

	CREATE TABLE IF NOT EXISTS offers (
		id TEXT PRIMARY KEY,
		offer_number TEXT,
		title TEXT NOT NULL,
		external_reference TEXT,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		customer_name TEXT NOT NULL,
		company_id TEXT NOT NULL,
		phase TEXT NOT NULL,
		status TEXT NOT NULL,
		probability INTEGER NOT NULL DEFAULT 0,
		value REAL NOT NULL DEFAULT 0,
		cost REAL NOT NULL DEFAULT 0,
		location TEXT,
		notes TEXT,
		responsible_user_name TEXT,
		sent_date TIMESTAMP,
		due_date TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(company_id, offer_number)
	);
	CREATE INDEX IF NOT EXISTS idx_offers_customer ON offers(customer_id);
	CREATE INDEX IF NOT EXISTS idx_offers_company ON offers(company_id);
	CREATE INDEX IF NOT EXISTS idx_offers_phase ON offers(phase);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ListCustomers returns all customers, in no guaranteed order.
func (r *Repository) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	query := `
		SELECT id, name, org_number, email, phone, address, city, postal_code,
			country, contact_person, status, customer_class, credit_limit,
			is_internal, municipality, county, created_at, updated_at
		FROM customers
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []entities.Customer
	for rows.Next() {
		var c entities.Customer
		var creditLimit sql.NullFloat64
		err := rows.Scan(
			&c.ID, &c.Name, &c.OrgNumber, &c.Email, &c.Phone, &c.Address,
			&c.City, &c.PostalCode, &c.Country, &c.ContactPerson, &c.Status,
			&c.CustomerClass, &creditLimit, &c.IsInternal, &c.Municipality,
			&c.County, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		if creditLimit.Valid {
			c.CreditLimit = &creditLimit.Float64
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

// SaveCustomers inserts or updates a batch of customers in one transaction.
func (r *Repository) SaveCustomers(ctx context.Context, customers []entities.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO customers (
			id, name, org_number, email, phone, address, city, postal_code,
			country, contact_person, status, customer_class, credit_limit,
			is_internal, municipality, county, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			org_number = excluded.org_number,
			email = excluded.email,
			phone = excluded.phone,
			address = excluded.address,
			city = excluded.city,
			postal_code = excluded.postal_code,
			country = excluded.country,
			contact_person = excluded.contact_person,
			status = excluded.status,
			customer_class = excluded.customer_class,
			credit_limit = excluded.credit_limit,
			is_internal = excluded.is_internal,
			municipality = excluded.municipality,
			county = excluded.county,
			updated_at = excluded.updated_at
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing customer insert: %w", err)
	}
	defer stmt.Close()

	for i := range customers {
		c := &customers[i]
		var creditLimit any
		if c.CreditLimit != nil {
			creditLimit = *c.CreditLimit
		}
		_, err := stmt.ExecContext(ctx,
			c.ID, c.Name, c.OrgNumber, c.Email, c.Phone, c.Address, c.City,
			c.PostalCode, c.Country, c.ContactPerson, c.Status,
			c.CustomerClass, creditLimit, c.IsInternal, c.Municipality,
			c.County, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("saving customer %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customers: %w", err)
	}
	return nil
}

// DeleteAllCustomers removes every customer. Offers cascade via the schema.
func (r *Repository) DeleteAllCustomers(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM customers"); err != nil {
		return fmt.Errorf("deleting customers: %w", err)
	}
	return nil
}

// CountCustomers returns the total number of customers.
func (r *Repository) CountCustomers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return count, nil
}

// SaveOffers inserts or updates a batch of offers in one transaction.
func (r *Repository) SaveOffers(ctx context.Context, offers []entities.Offer) error {
	if len(offers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO offers (
			id, offer_number, title, external_reference, customer_id,
			customer_name, company_id, phase, status, probability, value,
			cost, location, notes, responsible_user_name, sent_date,
			due_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing offer insert: %w", err)
	}
	defer stmt.Close()

	for i := range offers {
		o := &offers[i]
		_, err := stmt.ExecContext(ctx,
			o.ID, o.OfferNumber, o.Title, o.ExternalReference, o.CustomerID,
			o.MatchedCustomerName, o.CompanyID, o.Phase, o.Status,
			o.Probability, o.Value, o.Cost, o.Location, o.Notes,
			o.ResponsibleUserName, nullableTime(o.SentDate),
			nullableTime(o.DueDate), o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("saving offer %q: %w", o.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing offers: %w", err)
	}
	return nil
}

// DeleteOffersByCompany removes all offers for a company and returns how
// many were deleted.
func (r *Repository) DeleteOffersByCompany(ctx context.Context, companyID string) (int, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM offers WHERE company_id = ?", companyID)
	if err != nil {
		return 0, fmt.Errorf("deleting offers: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted offers: %w", err)
	}
	return int(n), nil
}

// CountOffersByCompany returns the number of offers for a company.
func (r *Repository) CountOffersByCompany(ctx context.Context, companyID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM offers WHERE company_id = ?", companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting offers: %w", err)
	}
	return count, nil
}

// nullableTime converts a *time.Time to a driver-friendly value.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
