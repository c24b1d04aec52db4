package models

import "time"

// ErpSettings represents the singleton ERP connection row (settings_id is
// always "default").
type ErpSettings struct {
	SettingsID        string     `db:"settings_id"`
	Server            string     `db:"server"`
	DatabasePath      string     `db:"database_path"`
	Username          string     `db:"username"`
	IsConnected       bool       `db:"is_connected"`
	LastSyncStock     *time.Time `db:"last_sync_stock"`
	LastSyncInvoices  *time.Time `db:"last_sync_invoices"`
	LastSyncCustomers *time.Time `db:"last_sync_customers"`
	LastSyncOffers    *time.Time `db:"last_sync_offers"`
}
