package entities

import "time"

// Phase represents where an offer sits in its lifecycle.
type Phase string

const (
	// PhaseInProgress means the offer is being worked on internally.
	PhaseInProgress Phase = "in_progress"
	// PhaseSent means the offer has been sent to the customer.
	PhaseSent Phase = "sent"
	// PhaseOrder means the customer accepted and work is in progress.
	PhaseOrder Phase = "order"
	// PhaseCompleted means the order is finished.
	PhaseCompleted Phase = "completed"
	// PhaseLost means the customer rejected the offer.
	PhaseLost Phase = "lost"
)

// OfferStatus is the coarse offer state carried alongside the phase.
type OfferStatus string

const (
	// OfferActive covers every phase except lost and expired.
	OfferActive OfferStatus = "active"
	// OfferLost marks rejected offers.
	OfferLost OfferStatus = "lost"
	// OfferExpired marks offers the export flags as expired; these are
	// skipped entirely during import.
	OfferExpired OfferStatus = "expired"
)

// Offer represents one sales offer to be migrated into the store.
// CustomerName holds the raw export spelling; CustomerID and
// MatchedCustomerName are set once the resolver finds a store customer.
type Offer struct {
	ID                  string      `json:"id"`
	OfferNumber         string      `json:"offer_number,omitempty"`
	Title               string      `json:"title"`
	ExternalReference   string      `json:"external_reference,omitempty"`
	CustomerName        string      `json:"customer_name"`
	MatchedCustomerName string      `json:"matched_customer_name,omitempty"`
	CustomerID          string      `json:"customer_id,omitempty"`
	CompanyID           string      `json:"company_id"`
	Phase               Phase       `json:"phase"`
	Status              OfferStatus `json:"status"`
	Probability         int         `json:"probability"`
	Value               float64     `json:"value"`
	Cost                float64     `json:"cost"`
	Location            string      `json:"location,omitempty"`
	Notes               string      `json:"notes,omitempty"`
	ResponsibleUserName string      `json:"responsible_user_name,omitempty"`
	SentDate            *time.Time  `json:"sent_date,omitempty"`
	DueDate             *time.Time  `json:"due_date,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// statusMapping maps export status labels to (phase, status). Phases that
// depend on whether the offer was ever sent are resolved in MapStatus.
var statusMapping = map[string]struct {
	phase  Phase
	status OfferStatus
}{
	"Tilbud":   {phaseNeedsSentDate, OfferActive},
	"Ferdig":   {PhaseCompleted, OfferActive},
	"Ordre":    {PhaseOrder, OfferActive},
	"Tapt":     {PhaseLost, OfferLost},
	"BUDSJETT": {phaseNeedsSentDate, OfferActive},
	"UTGÅR":    {phaseSkip, OfferExpired},
	"UTLØPT":   {phaseSkip, OfferExpired},
}

// Internal sentinels used only inside MapStatus.
const (
	phaseNeedsSentDate Phase = "_needs_sent_date"
	phaseSkip          Phase = "_skip"
)

// MapStatus maps an export status label to a phase and status. Unknown
// labels behave like "Tilbud": the phase depends on whether a sent date is
// present. skip is true for expired offers, which must not be imported.
func MapStatus(exportStatus string, sentDate *time.Time) (phase Phase, status OfferStatus, skip bool) {
	m, ok := statusMapping[exportStatus]
	if !ok {
		m.phase = phaseNeedsSentDate
		m.status = OfferActive
	}

	switch m.phase {
	case phaseSkip:
		return "", m.status, true
	case phaseNeedsSentDate:
		if sentDate != nil {
			return PhaseSent, m.status, false
		}
		return PhaseInProgress, m.status, false
	default:
		return m.phase, m.status, false
	}
}

// ProbabilityFor returns the default win probability for a phase.
func ProbabilityFor(phase Phase) int {
	switch phase {
	case PhaseInProgress:
		return 20
	case PhaseSent:
		return 50
	case PhaseOrder, PhaseCompleted:
		return 100
	default:
		return 0
	}
}
