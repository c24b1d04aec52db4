package domain

import "time"

// CustomerStatus marks whether a customer is actively traded with.
type CustomerStatus string

const (
	CustomerActive  CustomerStatus = "active"
	CustomerPassive CustomerStatus = "passive"
)

// AnalysisKind selects which AI annotation slot of a customer is written.
type AnalysisKind string

const (
	AnalysisSentiment   AnalysisKind = "sentiment"
	AnalysisOpportunity AnalysisKind = "opportunity"
	AnalysisNextStep    AnalysisKind = "next_step"
)

// AIAnnotation stores the opaque result of an external analysis call.
// The core never interprets the text, it only persists it with a timestamp.
type AIAnnotation struct {
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Customer is a CRM customer identity. Identities are created either directly
// by a user (no CurrentCode) or on first sync encounter of an unseen ledger
// code (CurrentCode set, which is the secondary unique key for resync merges).
type Customer struct {
	CustomerID      string         `json:"customerID"` // Primary Key (UUID)
	Name            string         `json:"name"`
	CommercialTitle string         `json:"commercialTitle"`
	CurrentCode     string         `json:"currentCode"` // Ledger secondary key; empty for UI-created identities
	Status          CustomerStatus `json:"status"`
	Address         string         `json:"address"`
	Country         string         `json:"country"`
	City            string         `json:"city"`
	District        string         `json:"district"`
	PostalCode      string         `json:"postalCode"`
	Phone           string         `json:"phone"`
	Email           string         `json:"email"`
	TaxOffice       string         `json:"taxOffice"`
	TaxNumber       string         `json:"taxNumber"`
	Notes           string         `json:"notes"` // CRM-only, never touched by sync
	AuditFields

	// One slot per analysis kind; CRM-only, never touched by sync.
	AISentiment   *AIAnnotation `json:"aiSentimentAnalysis,omitempty"`
	AIOpportunity *AIAnnotation `json:"aiOpportunityAnalysis,omitempty"`
	AINextStep    *AIAnnotation `json:"aiNextStepSuggestion,omitempty"`
}

// ApplyLedgerFields overwrites exactly the ledger-sourced fields of the
// customer with values parsed from the feed. Everything else (the identity
// itself, notes, AI annotations, contact data entered in the CRM) is kept.
// The whitelist is deliberately explicit so the CRM-only field set stays
// auditable as the schema grows.
func (c *Customer) ApplyLedgerFields(lc LedgerCustomer) {
	c.CurrentCode = lc.CurrentCode
	c.Name = lc.Name
	c.CommercialTitle = lc.CommercialTitle
	c.City = lc.City
	c.District = lc.District
	c.Country = lc.Country
	c.TaxOffice = lc.TaxOffice
	c.TaxNumber = lc.TaxNumber
	c.Status = CustomerActive
}

// Annotation returns the slot for the given analysis kind, or nil if the
// kind is unknown.
func (c *Customer) Annotation(kind AnalysisKind) *AIAnnotation {
	switch kind {
	case AnalysisSentiment:
		return c.AISentiment
	case AnalysisOpportunity:
		return c.AIOpportunity
	case AnalysisNextStep:
		return c.AINextStep
	}
	return nil
}

// SetAnnotation writes the slot for the given analysis kind.
func (c *Customer) SetAnnotation(kind AnalysisKind, a AIAnnotation) {
	switch kind {
	case AnalysisSentiment:
		c.AISentiment = &a
	case AnalysisOpportunity:
		c.AIOpportunity = &a
	case AnalysisNextStep:
		c.AINextStep = &a
	}
}
