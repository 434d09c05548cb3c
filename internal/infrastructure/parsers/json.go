package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses offer and customer rows from JSON exports. Dates are
// accepted in the same layouts as CSV cells.
type JSONParser struct{}

// jsonOfferRow mirrors RawOfferRow with string-typed cells, so malformed
// values degrade the same way as in CSV exports instead of failing decode.
type jsonOfferRow struct {
	ProjectTitle string `json:"project"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	Responsible  string `json:"responsible"`
	Location     string `json:"location"`
	Notes        string `json:"notes"`
	Value        string `json:"value"`
	Margin       string `json:"margin"`
	SentDate     string `json:"sent_date"`
	DueDate      string `json:"due_date"`
	LastUpdated  string `json:"last_updated"`
}

type jsonCustomerRow struct {
	Name          string `json:"name"`
	OrgNumber     string `json:"org_number"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	Landline      string `json:"landline"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	ContactPerson string `json:"contact_person"`
	Inactive      string `json:"inactive"`
	CustomerClass string `json:"customer_class"`
	CreditLimit   string `json:"credit_limit"`
	IsInternal    string `json:"is_internal"`
	Municipality  string `json:"municipality"`
	County        string `json:"county"`
}

// ParseOffers reads a JSON array of offer rows.
func (p *JSONParser) ParseOffers(r io.Reader) ([]RawOfferRow, error) {
	var raw []jsonOfferRow
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	rows := make([]RawOfferRow, 0, len(raw))
	for i, j := range raw {
		rows = append(rows, RawOfferRow{
			ProjectTitle: CleanString(j.ProjectTitle),
			CustomerName: CleanString(j.CustomerName),
			Status:       CleanString(j.Status),
			Responsible:  CleanString(j.Responsible),
			Location:     CleanString(j.Location),
			Notes:        CleanString(j.Notes),
			Value:        CleanFloat(j.Value),
			Margin:       CleanFloat(j.Margin),
			SentDate:     CleanDate(j.SentDate),
			DueDate:      CleanDate(j.DueDate),
			LastUpdated:  CleanDate(j.LastUpdated),
			LineNum:      i + 1, // Array index, 1-indexed
		})
	}

	return rows, nil
}

// ParseCustomers reads a JSON array of customer rows.
func (p *JSONParser) ParseCustomers(r io.Reader) ([]RawCustomerRow, error) {
	var raw []jsonCustomerRow
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	rows := make([]RawCustomerRow, 0, len(raw))
	for i, j := range raw {
		rows = append(rows, RawCustomerRow{
			Name:          CleanString(j.Name),
			OrgNumber:     CleanOrgNumber(j.OrgNumber),
			Email:         CleanString(j.Email),
			Mobile:        CleanString(j.Mobile),
			Landline:      CleanString(j.Landline),
			Address:       CleanString(j.Address),
			City:          CleanString(j.City),
			PostalCode:    CleanPostalCode(j.PostalCode),
			Country:       CleanString(j.Country),
			ContactPerson: CleanString(j.ContactPerson),
			Inactive:      CleanBool(j.Inactive),
			CustomerClass: CleanString(j.CustomerClass),
			CreditLimit:   CleanCreditLimit(j.CreditLimit),
			IsInternal:    CleanBool(j.IsInternal),
			Municipality:  CleanString(j.Municipality),
			County:        CleanString(j.County),
			LineNum:       i + 1,
		})
	}

	return rows, nil
}
