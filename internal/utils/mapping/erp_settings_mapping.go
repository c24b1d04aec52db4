package mapping

import (
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	"github.com/cnkcrm/crm_backend/internal/models"
)

// ToModelErpSettings converts domain ErpSettings to model ErpSettings
func ToModelErpSettings(d domain.ErpSettings) models.ErpSettings {
	return models.ErpSettings{
		SettingsID:        d.SettingsID,
		Server:            d.Server,
		DatabasePath:      d.DatabasePath,
		Username:          d.Username,
		IsConnected:       d.IsConnected,
		LastSyncStock:     d.LastSyncStock,
		LastSyncInvoices:  d.LastSyncInvoices,
		LastSyncCustomers: d.LastSyncCustomers,
		LastSyncOffers:    d.LastSyncOffers,
	}
}

// ToDomainErpSettings converts model ErpSettings to domain ErpSettings
func ToDomainErpSettings(m models.ErpSettings) domain.ErpSettings {
	return domain.ErpSettings{
		SettingsID:        m.SettingsID,
		Server:            m.Server,
		DatabasePath:      m.DatabasePath,
		Username:          m.Username,
		IsConnected:       m.IsConnected,
		LastSyncStock:     m.LastSyncStock,
		LastSyncInvoices:  m.LastSyncInvoices,
		LastSyncCustomers: m.LastSyncCustomers,
		LastSyncOffers:    m.LastSyncOffers,
	}
}
