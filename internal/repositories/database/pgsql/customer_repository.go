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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// execer is satisfied by both *pgxpool.Pool and pgx.Tx, so upsert statements
// can run standalone or inside a bulk transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const customerColumns = `customer_id, name, commercial_title, current_code, status, address, country, city, district, postal_code, phone, email, tax_office, tax_number, notes, ai_sentiment, ai_opportunity, ai_next_step, created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryWithTx {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CustomerRepositoryWithTx = (*PgxCustomerRepository)(nil)

// SaveCustomer inserts or updates a single customer keyed by customer_id.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	modelCust := mapping.ToModelCustomer(customer)
	if err := r.execUpsertCustomer(ctx, r.Pool, modelCust); err != nil {
		return fmt.Errorf("failed to save customer %s: %w", modelCust.CustomerID, err)
	}
	return nil
}

// BulkUpsertCustomers writes a batch of customers in a single transaction.
// The sync pass relies on this being all-or-nothing so a partial feed write
// cannot leave half-merged identities behind.
func (r *PgxCustomerRepository) BulkUpsertCustomers(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	for _, customer := range customers {
		modelCust := mapping.ToModelCustomer(customer)
		if err := r.execUpsertCustomer(ctx, tx, modelCust); err != nil {
			return fmt.Errorf("failed to upsert customer %s: %w", modelCust.CustomerID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCustomerRepository) execUpsertCustomer(ctx context.Context, exec execer, modelCust models.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (customer_id) DO UPDATE SET
			name = EXCLUDED.name,
			commercial_title = EXCLUDED.commercial_title,
			current_code = EXCLUDED.current_code,
			status = EXCLUDED.status,
			address = EXCLUDED.address,
			country = EXCLUDED.country,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			postal_code = EXCLUDED.postal_code,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			tax_office = EXCLUDED.tax_office,
			tax_number = EXCLUDED.tax_number,
			notes = EXCLUDED.notes,
			ai_sentiment = EXCLUDED.ai_sentiment,
			ai_opportunity = EXCLUDED.ai_opportunity,
			ai_next_step = EXCLUDED.ai_next_step,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := exec.Exec(ctx, query,
		modelCust.CustomerID,
		modelCust.Name,
		modelCust.CommercialTitle,
		modelCust.CurrentCode,
		modelCust.Status,
		modelCust.Address,
		modelCust.Country,
		modelCust.City,
		modelCust.District,
		modelCust.PostalCode,
		modelCust.Phone,
		modelCust.Email,
		modelCust.TaxOffice,
		modelCust.TaxNumber,
		modelCust.Notes,
		modelCust.AISentiment,
		modelCust.AIOpportunity,
		modelCust.AINextStep,
		modelCust.CreatedAt,
		modelCust.CreatedBy,
		modelCust.LastUpdatedAt,
		modelCust.LastUpdatedBy,
	)
	return err
}

// FindCustomerByID retrieves a customer by its primary key.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer %s: %w", customerID, err)
	}
	modelCust, err := pgx.CollectOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by id %s: %w", customerID, err)
	}
	domainCust := mapping.ToDomainCustomer(modelCust)
	return &domainCust, nil
}

// FindCustomersByCurrentCodes retrieves all customers whose ledger code is in
// the given set. Codes with no match are simply absent from the result.
func (r *PgxCustomerRepository) FindCustomersByCurrentCodes(ctx context.Context, codes []string) ([]domain.Customer, error) {
	if len(codes) == 0 {
		return []domain.Customer{}, nil
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE current_code = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers by current codes: %w", err)
	}
	modelCusts, err := pgx.CollectRows(rows, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers by current codes: %w", err)
	}
	return mapping.ToDomainCustomerSlice(modelCusts), nil
}

// ListCustomers retrieves customers ordered by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	modelCusts, err := pgx.CollectRows(rows, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	return mapping.ToDomainCustomerSlice(modelCusts), nil
}

// UpdateCustomer persists changes to an existing customer.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	modelCust := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers SET
			name = $2,
			commercial_title = $3,
			current_code = $4,
			status = $5,
			address = $6,
			country = $7,
			city = $8,
			district = $9,
			postal_code = $10,
			phone = $11,
			email = $12,
			tax_office = $13,
			tax_number = $14,
			notes = $15,
			ai_sentiment = $16,
			ai_opportunity = $17,
			ai_next_step = $18,
			last_updated_at = $19,
			last_updated_by = $20
		WHERE customer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelCust.CustomerID,
		modelCust.Name,
		modelCust.CommercialTitle,
		modelCust.CurrentCode,
		modelCust.Status,
		modelCust.Address,
		modelCust.Country,
		modelCust.City,
		modelCust.District,
		modelCust.PostalCode,
		modelCust.Phone,
		modelCust.Email,
		modelCust.TaxOffice,
		modelCust.TaxNumber,
		modelCust.Notes,
		modelCust.AISentiment,
		modelCust.AIOpportunity,
		modelCust.AINextStep,
		modelCust.LastUpdatedAt,
		modelCust.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", modelCust.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer row.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.CollectableRow) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.CustomerID,
		&c.Name,
		&c.CommercialTitle,
		&c.CurrentCode,
		&c.Status,
		&c.Address,
		&c.Country,
		&c.City,
		&c.District,
		&c.PostalCode,
		&c.Phone,
		&c.Email,
		&c.TaxOffice,
		&c.TaxNumber,
		&c.Notes,
		&c.AISentiment,
		&c.AIOpportunity,
		&c.AINextStep,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}
