package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CompanyFilter captures listing parameters.
type CompanyFilter struct {
	IsActive *bool
	Limit    int
	Offset   int
}

// CompanyRepository encapsulates company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByContactEmail(ctx context.Context, email string) (*domain.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (name, slug, owner_user_id, description, contact_email, website_url, logo_url, address, phone_number, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		company.Name,
		company.Slug,
		company.OwnerUserID,
		company.Description,
		company.ContactEmail,
		company.WebsiteURL,
		company.LogoURL,
		company.Address,
		company.PhoneNumber,
		company.IsActive,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	const query = `
        UPDATE companies SET name=$1, slug=$2, description=$3, contact_email=$4, website_url=$5,
            logo_url=$6, address=$7, phone_number=$8, is_active=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		company.Name,
		company.Slug,
		company.Description,
		company.ContactEmail,
		company.WebsiteURL,
		company.LogoURL,
		company.Address,
		company.PhoneNumber,
		company.IsActive,
		company.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	const query = companySelect + ` WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *companyRepository) GetByContactEmail(ctx context.Context, email string) (*domain.Company, error) {
	const query = companySelect + ` WHERE contact_email=$1`
	return r.fetchSingle(ctx, query, email)
}

const companySelect = `
        SELECT id, name, slug, owner_user_id, description, contact_email, website_url, logo_url, address, phone_number, is_active, created_at, updated_at
        FROM companies`

func (r *companyRepository) List(ctx context.Context, filter CompanyFilter) ([]domain.Company, error) {
	query := companySelect
	args := []any{}
	if filter.IsActive != nil {
		query += ` WHERE is_active=$1`
		args = append(args, *filter.IsActive)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (r *companyRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Company, error) {
	var company domain.Company
	if err := scanCompany(r.pool.QueryRow(ctx, query, arg), &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func scanCompany(row pgx.Row, company *domain.Company) error {
	return row.Scan(
		&company.ID,
		&company.Name,
		&company.Slug,
		&company.OwnerUserID,
		&company.Description,
		&company.ContactEmail,
		&company.WebsiteURL,
		&company.LogoURL,
		&company.Address,
		&company.PhoneNumber,
		&company.IsActive,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
}
