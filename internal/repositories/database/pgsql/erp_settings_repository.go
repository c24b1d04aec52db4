package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cnkcrm/crm_backend/internal/apperrors"
	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portsrepo "github.com/cnkcrm/crm_backend/internal/core/ports/repositories"
	"github.com/cnkcrm/crm_backend/internal/models"
	"github.com/cnkcrm/crm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxErpSettingsRepository struct {
	BaseRepository
}

// newPgxErpSettingsRepository creates a new repository for the ERP settings singleton.
func newPgxErpSettingsRepository(pool *pgxpool.Pool) portsrepo.ErpSettingsRepository {
	return &PgxErpSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ErpSettingsRepository = (*PgxErpSettingsRepository)(nil)

// GetErpSettings retrieves the singleton settings row. Returns ErrNotFound
// until the record is first written.
func (r *PgxErpSettingsRepository) GetErpSettings(ctx context.Context) (*domain.ErpSettings, error) {
	query := `
		SELECT settings_id, server, database_path, username, is_connected,
			last_sync_stock, last_sync_invoices, last_sync_customers, last_sync_offers
		FROM erp_settings
		WHERE settings_id = $1;
	`
	var m models.ErpSettings
	err := r.Pool.QueryRow(ctx, query, domain.ErpSettingsID).Scan(
		&m.SettingsID,
		&m.Server,
		&m.DatabasePath,
		&m.Username,
		&m.IsConnected,
		&m.LastSyncStock,
		&m.LastSyncInvoices,
		&m.LastSyncCustomers,
		&m.LastSyncOffers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get erp settings: %w", err)
	}
	settings := mapping.ToDomainErpSettings(m)
	return &settings, nil
}

// SaveErpSettings inserts or replaces the singleton settings row.
func (r *PgxErpSettingsRepository) SaveErpSettings(ctx context.Context, settings domain.ErpSettings) error {
	m := mapping.ToModelErpSettings(settings)
	query := `
		INSERT INTO erp_settings (settings_id, server, database_path, username, is_connected,
			last_sync_stock, last_sync_invoices, last_sync_customers, last_sync_offers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (settings_id) DO UPDATE SET
			server = EXCLUDED.server,
			database_path = EXCLUDED.database_path,
			username = EXCLUDED.username,
			is_connected = EXCLUDED.is_connected,
			last_sync_stock = EXCLUDED.last_sync_stock,
			last_sync_invoices = EXCLUDED.last_sync_invoices,
			last_sync_customers = EXCLUDED.last_sync_customers,
			last_sync_offers = EXCLUDED.last_sync_offers;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SettingsID,
		m.Server,
		m.DatabasePath,
		m.Username,
		m.IsConnected,
		m.LastSyncStock,
		m.LastSyncInvoices,
		m.LastSyncCustomers,
		m.LastSyncOffers,
	)
	if err != nil {
		return fmt.Errorf("failed to save erp settings: %w", err)
	}
	return nil
}
