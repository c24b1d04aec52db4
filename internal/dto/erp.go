package dto

import (
	"time"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// UpdateErpSettingsRequest replaces the editable fields of the ERP settings
// singleton.
type UpdateErpSettingsRequest struct {
	Server       string `json:"server"`
	DatabasePath string `json:"databasePath"`
	Username     string `json:"username"`
	IsConnected  bool   `json:"isConnected"`
}

// ErpSettingsResponse defines the data returned for the settings singleton.
type ErpSettingsResponse struct {
	ID                string     `json:"id"`
	Server            string     `json:"server"`
	DatabasePath      string     `json:"databasePath"`
	Username          string     `json:"username"`
	IsConnected       bool       `json:"isConnected"`
	LastSyncStock     *time.Time `json:"lastSyncStock,omitempty"`
	LastSyncInvoices  *time.Time `json:"lastSyncInvoices,omitempty"`
	LastSyncCustomers *time.Time `json:"lastSyncCustomers,omitempty"`
	LastSyncOffers    *time.Time `json:"lastSyncOffers,omitempty"`
}

// ToErpSettingsResponse converts the settings singleton to its response DTO.
func ToErpSettingsResponse(s *domain.ErpSettings) ErpSettingsResponse {
	return ErpSettingsResponse{
		ID:                s.SettingsID,
		Server:            s.Server,
		DatabasePath:      s.DatabasePath,
		Username:          s.Username,
		IsConnected:       s.IsConnected,
		LastSyncStock:     s.LastSyncStock,
		LastSyncInvoices:  s.LastSyncInvoices,
		LastSyncCustomers: s.LastSyncCustomers,
		LastSyncOffers:    s.LastSyncOffers,
	}
}

// SyncResultResponse is the per-run report returned by a sync endpoint.
type SyncResultResponse struct {
	Type    string `json:"type"`
	Fetched int    `json:"fetched"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
}

// ToSyncResultResponse converts a domain.SyncResult to its response DTO.
func ToSyncResultResponse(r *domain.SyncResult) SyncResultResponse {
	return SyncResultResponse{Type: r.Type, Fetched: r.Fetched, Added: r.Added, Updated: r.Updated}
}
