// Package parsers provides parsers for the ERP export files (offer plans and
// customer lists) in CSV and JSON form.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
	"time"
)

// RawOfferRow is one offer row from an export, with cells cleaned to typed
// values but before any domain validation or matching.
type RawOfferRow struct {
	ProjectTitle string     `json:"project"`
	CustomerName string     `json:"customer_name"`
	Status       string     `json:"status"`
	Responsible  string     `json:"responsible"`
	Location     string     `json:"location,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Value        float64    `json:"value"`
	Margin       float64    `json:"margin"`
	SentDate     *time.Time `json:"sent_date,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
	LineNum      int        `json:"-"` // Line number in source file (set by parser)
}

// RawCustomerRow is one customer row from an export.
type RawCustomerRow struct {
	Name          string   `json:"name"`
	OrgNumber     string   `json:"org_number,omitempty"`
	Email         string   `json:"email,omitempty"`
	Mobile        string   `json:"mobile,omitempty"`
	Landline      string   `json:"landline,omitempty"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city,omitempty"`
	PostalCode    string   `json:"postal_code,omitempty"`
	Country       string   `json:"country,omitempty"`
	ContactPerson string   `json:"contact_person,omitempty"`
	Inactive      bool     `json:"inactive,omitempty"`
	CustomerClass string   `json:"customer_class,omitempty"`
	CreditLimit   *float64 `json:"credit_limit,omitempty"` // Pointer to distinguish 0 from unset
	IsInternal    bool     `json:"is_internal,omitempty"`
	Municipality  string   `json:"municipality,omitempty"`
	County        string   `json:"county,omitempty"`
	LineNum       int      `json:"-"`
}

// OfferParser parses offer rows from an export file.
type OfferParser interface {
	ParseOffers(r io.Reader) ([]RawOfferRow, error)
}

// CustomerParser parses customer rows from an export file.
type CustomerParser interface {
	ParseCustomers(r io.Reader) ([]RawCustomerRow, error)
}

// OffersForFormat returns the offer parser for the given format.
// Supported formats: "json", "csv".
func OffersForFormat(format string) OfferParser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// OffersForFile returns the offer parser based on file extension.
func OffersForFile(filename string) OfferParser {
	return OffersForFormat(extFormat(filename))
}

// CustomersForFormat returns the customer parser for the given format.
func CustomersForFormat(format string) CustomerParser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// CustomersForFile returns the customer parser based on file extension.
func CustomersForFile(filename string) CustomerParser {
	return CustomersForFormat(extFormat(filename))
}

func extFormat(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
