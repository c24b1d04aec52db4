package domain

import "time"

// ErpSettingsID is the key of the singleton settings record.
const ErpSettingsID = "default"

// SyncEntity identifies which entity type a sync pass operates on.
type SyncEntity string

const (
	SyncCustomers SyncEntity = "customers"
	SyncInvoices  SyncEntity = "invoices"
	SyncOffers    SyncEntity = "offers"
	SyncStock     SyncEntity = "stock"
)

// ErpSettings is the singleton ERP connection record. The lastSync timestamps
// are stamped at the end of every successful sync pass.
type ErpSettings struct {
	SettingsID        string     `json:"id"` // Always ErpSettingsID
	Server            string     `json:"server"`
	DatabasePath      string     `json:"databasePath"`
	Username          string     `json:"username"`
	IsConnected       bool       `json:"isConnected"`
	LastSyncStock     *time.Time `json:"lastSyncStock,omitempty"`
	LastSyncInvoices  *time.Time `json:"lastSyncInvoices,omitempty"`
	LastSyncCustomers *time.Time `json:"lastSyncCustomers,omitempty"`
	LastSyncOffers    *time.Time `json:"lastSyncOffers,omitempty"`
}

// SetLastSync stamps the timestamp slot for the given entity type.
func (s *ErpSettings) SetLastSync(entity SyncEntity, t time.Time) {
	switch entity {
	case SyncStock:
		s.LastSyncStock = &t
	case SyncInvoices:
		s.LastSyncInvoices = &t
	case SyncCustomers:
		s.LastSyncCustomers = &t
	case SyncOffers:
		s.LastSyncOffers = &t
	}
}

// SyncResult is the per-run report returned by a sync pass. Type carries the
// human-facing entity name shown in the UI notification.
type SyncResult struct {
	Type    string `json:"type"`
	Fetched int    `json:"fetched"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
}
