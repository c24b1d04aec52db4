package models

import "time"

// CustomerStatus mirrors the domain status enum at the storage layer.
type CustomerStatus string

const (
	CustomerActive  CustomerStatus = "active"
	CustomerPassive CustomerStatus = "passive"
)

// AIAnnotation is one persisted analysis slot, stored as jsonb.
type AIAnnotation struct {
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Customer represents a CRM customer row.
// Note: CurrentCode is a nullable unique column; empty string maps to NULL so
// UI-created identities never collide on the ledger key.
type Customer struct {
	CustomerID      string         `db:"customer_id"`
	Name            string         `db:"name"`
	CommercialTitle string         `db:"commercial_title"`
	CurrentCode     *string        `db:"current_code"` // Nullable unique ledger key
	Status          CustomerStatus `db:"status"`
	Address         string         `db:"address"`
	Country         string         `db:"country"`
	City            string         `db:"city"`
	District        string         `db:"district"`
	PostalCode      string         `db:"postal_code"`
	Phone           string         `db:"phone"`
	Email           string         `db:"email"`
	TaxOffice       string         `db:"tax_office"`
	TaxNumber       string         `db:"tax_number"`
	Notes           string         `db:"notes"`
	AISentiment     *AIAnnotation  `db:"ai_sentiment"`   // jsonb, nullable
	AIOpportunity   *AIAnnotation  `db:"ai_opportunity"` // jsonb, nullable
	AINextStep      *AIAnnotation  `db:"ai_next_step"`   // jsonb, nullable
	AuditFields
}
