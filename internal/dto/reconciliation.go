package dto

import (
	"time"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReconciliationRequest opens a reconciliation case for one customer
// and one calendar month. The amount is not accepted from the caller; it is
// aggregated from the ledger view of that period.
type CreateReconciliationRequest struct {
	CustomerID string                    `json:"customerID" binding:"required"`
	Type       domain.ReconciliationType `json:"type" binding:"required,oneof=current_account ba bs"`
	Period     string                    `json:"period" binding:"required"` // "YYYY-MM"
	Notes      string                    `json:"notes"`
}

// ReconciliationResponseRequest records the customer's answer to a pending
// case.
type ReconciliationResponseRequest struct {
	Status           domain.ReconciliationStatus `json:"status" binding:"required,oneof=agreed disagreed"`
	CustomerResponse string                      `json:"customerResponse"`
}

// AnalyzeDisagreementRequest asks for an AI reading of a disagreement text.
type AnalyzeDisagreementRequest struct {
	CustomerResponse string `json:"customerResponse" binding:"required"`
}

// ReconciliationResponse defines the data returned for a reconciliation case.
type ReconciliationResponse struct {
	ReconciliationID string                      `json:"reconciliationID"`
	CustomerID       string                      `json:"customerID"`
	Type             domain.ReconciliationType   `json:"type"`
	Period           string                      `json:"period"`
	Amount           decimal.Decimal             `json:"amount"`
	Status           domain.ReconciliationStatus `json:"status"`
	CreatedAt        time.Time                   `json:"createdAt"`
	CreatedBy        string                      `json:"createdBy"`
	LastEmailSent    *time.Time                  `json:"lastEmailSent,omitempty"`
	CustomerResponse string                      `json:"customerResponse,omitempty"`
	Notes            string                      `json:"notes,omitempty"`
	AIAnalysis       string                      `json:"aiAnalysis,omitempty"`
}

// ToReconciliationResponse converts a domain.Reconciliation to its response DTO.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID: r.ReconciliationID,
		CustomerID:       r.CustomerID,
		Type:             r.Type,
		Period:           r.Period,
		Amount:           r.Amount,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		CreatedBy:        r.CreatedBy,
		LastEmailSent:    r.LastEmailSent,
		CustomerResponse: r.CustomerResponse,
		Notes:            r.Notes,
		AIAnalysis:       r.AIAnalysis,
	}
}

// ToListReconciliationResponse converts a slice of domain cases to DTOs.
func ToListReconciliationResponse(recs []domain.Reconciliation) []ReconciliationResponse {
	res := make([]ReconciliationResponse, len(recs))
	for i, r := range recs {
		res[i] = ToReconciliationResponse(&r)
	}
	return res
}

// InvoiceResponse defines the data returned for a persisted or aggregated
// invoice.
type InvoiceResponse struct {
	InvoiceID   string               `json:"invoiceID"`
	CustomerID  string               `json:"customerID,omitempty"`
	UserID      string               `json:"userID,omitempty"`
	Date        time.Time            `json:"date"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Items       []domain.InvoiceItem `json:"items"`
	Description string               `json:"description,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		CustomerID:  inv.CustomerID,
		UserID:      inv.UserID,
		Date:        inv.Date,
		TotalAmount: inv.TotalAmount,
		Items:       inv.Items,
		Description: inv.Description,
	}
}

// ToListInvoiceResponse converts a slice of domain invoices to DTOs.
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}
