package entities

import "time"

// CustomerStatus indicates whether a customer is active in the ERP.
type CustomerStatus string

const (
	// CustomerActive is the default status for imported customers.
	CustomerActive CustomerStatus = "active"
	// CustomerInactive marks customers flagged as inactive in the export.
	CustomerInactive CustomerStatus = "inactive"
)

// Customer represents a customer row in the relational store. Name is the
// display form as stored; matching always goes through the normalizer, never
// through Name directly.
type Customer struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	OrgNumber     string         `json:"org_number,omitempty"`
	Email         string         `json:"email,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Address       string         `json:"address,omitempty"`
	City          string         `json:"city,omitempty"`
	PostalCode    string         `json:"postal_code,omitempty"`
	Country       string         `json:"country,omitempty"`
	ContactPerson string         `json:"contact_person,omitempty"`
	Status        CustomerStatus `json:"status"`
	CustomerClass string         `json:"customer_class,omitempty"`
	CreditLimit   *float64       `json:"credit_limit,omitempty"` // Pointer to distinguish 0 from unset
	IsInternal    bool           `json:"is_internal"`
	Municipality  string         `json:"municipality,omitempty"`
	County        string         `json:"county,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
