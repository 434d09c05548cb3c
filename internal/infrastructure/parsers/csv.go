package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Column names as they appear in the ERP exports.
const (
	colProject     = "Prosjekt"
	colCustomer    = "Kunde / Byggherre"
	colStatus      = "Status"
	colResponsible = "Ansvarlig"
	colLocation    = "Beliggenhet"
	colNotes       = "Beskrivelse / siste nytt"
	colValue       = "Tilbudspris"
	colMargin      = "DB"
	colSent        = "Sendt"
	colDue         = "Vedståelses frist"
	colUpdated     = "Sist oppdatert"

	colCustName     = "Kundenavn"
	colOrgNumber    = "Org.nr."
	colEmail        = "Epost"
	colMobile       = "Mobil"
	colLandline     = "Telefon"
	colAddress      = "Adresse"
	colCity         = "Poststed"
	colPostalCode   = "Postnr."
	colCountry      = "Land"
	colContact      = "Hovedkontakt"
	colInactive     = "Inaktiv"
	colCustClass    = "Kundeklasse"
	colCreditLimit  = "Kredittgrense"
	colInternal     = "Internkunde"
	colMunicipality = "Kommune"
	colCounty       = "Fylke"
)

// CSVParser parses offer and customer rows from CSV exports.
type CSVParser struct{}

// ParseOffers reads CSV from the reader and returns cleaned offer rows.
func (p *CSVParser) ParseOffers(r io.Reader) ([]RawOfferRow, error) {
	reader := newCSVReader(r)

	colIndex, err := readHeader(reader, []string{colProject, colCustomer, colStatus})
	if err != nil {
		return nil, err
	}

	var rows []RawOfferRow
	lineNum := 1 // Header is line 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		rows = append(rows, RawOfferRow{
			ProjectTitle: CleanString(getColumn(record, colIndex, colProject)),
			CustomerName: CleanString(getColumn(record, colIndex, colCustomer)),
			Status:       CleanString(getColumn(record, colIndex, colStatus)),
			Responsible:  CleanString(getColumn(record, colIndex, colResponsible)),
			Location:     CleanString(getColumn(record, colIndex, colLocation)),
			Notes:        CleanString(getColumn(record, colIndex, colNotes)),
			Value:        CleanFloat(getColumn(record, colIndex, colValue)),
			Margin:       CleanFloat(getColumn(record, colIndex, colMargin)),
			SentDate:     CleanDate(getColumn(record, colIndex, colSent)),
			DueDate:      CleanDate(getColumn(record, colIndex, colDue)),
			LastUpdated:  CleanDate(getColumn(record, colIndex, colUpdated)),
			LineNum:      lineNum,
		})
	}

	return rows, nil
}

// ParseCustomers reads CSV from the reader and returns cleaned customer rows.
func (p *CSVParser) ParseCustomers(r io.Reader) ([]RawCustomerRow, error) {
	reader := newCSVReader(r)

	colIndex, err := readHeader(reader, []string{colCustName})
	if err != nil {
		return nil, err
	}

	var rows []RawCustomerRow
	lineNum := 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		rows = append(rows, RawCustomerRow{
			Name:          CleanString(getColumn(record, colIndex, colCustName)),
			OrgNumber:     CleanOrgNumber(getColumn(record, colIndex, colOrgNumber)),
			Email:         CleanString(getColumn(record, colIndex, colEmail)),
			Mobile:        CleanString(getColumn(record, colIndex, colMobile)),
			Landline:      CleanString(getColumn(record, colIndex, colLandline)),
			Address:       CleanString(getColumn(record, colIndex, colAddress)),
			City:          CleanString(getColumn(record, colIndex, colCity)),
			PostalCode:    CleanPostalCode(getColumn(record, colIndex, colPostalCode)),
			Country:       CleanString(getColumn(record, colIndex, colCountry)),
			ContactPerson: CleanString(getColumn(record, colIndex, colContact)),
			Inactive:      CleanBool(getColumn(record, colIndex, colInactive)),
			CustomerClass: CleanString(getColumn(record, colIndex, colCustClass)),
			CreditLimit:   CleanCreditLimit(getColumn(record, colIndex, colCreditLimit)),
			IsInternal:    CleanBool(getColumn(record, colIndex, colInternal)),
			Municipality:  CleanString(getColumn(record, colIndex, colMunicipality)),
			County:        CleanString(getColumn(record, colIndex, colCounty)),
			LineNum:       lineNum,
		})
	}

	return rows, nil
}

// newCSVReader builds a reader tolerant of the ragged rows the exports
// sometimes contain.
func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}

// readHeader reads the header row and validates required columns.
func readHeader(reader *csv.Reader, required []string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[CleanString(col)] = i
	}

	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
