package repositories

import (
	"context"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
)

// ErpSettingsRepository is the persistence port for the ERP settings
// singleton. GetErpSettings returns apperrors.ErrNotFound until the record is
// first written.
type ErpSettingsRepository interface {
	GetErpSettings(ctx context.Context) (*domain.ErpSettings, error)
	SaveErpSettings(ctx context.Context, settings domain.ErpSettings) error
}
