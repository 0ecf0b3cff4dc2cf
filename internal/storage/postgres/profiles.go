package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// Duplicate profile rows for one user are possible (no unique constraint, as
// in the original data model); GetByUserID picks the newest row.

const manufacturerCols = `id, user_id, company_name, parish, description, capabilities,
    min_order_qty, lead_time_days, verified, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanManufacturer(row rowScanner) (*models.Manufacturer, error) {
	var m models.Manufacturer
	var caps pq.StringArray
	err := row.Scan(&m.ID, &m.UserID, &m.CompanyName, &m.Parish, &m.Description, &caps,
		&m.MinOrderQty, &m.LeadTimeDays, &m.Verified, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Capabilities = []string(caps)
	if m.Capabilities == nil {
		m.Capabilities = []string{}
	}
	return &m, nil
}

func (s *Store) CreateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	if m.ID == "" {
		m.ID = newID()
	}
	query := `
        INSERT INTO manufacturers
            (id, user_id, company_name, parish, description, capabilities, min_order_qty, lead_time_days, verified)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		m.ID, m.UserID, m.CompanyName, m.Parish, m.Description,
		pq.StringArray(m.Capabilities), m.MinOrderQty, m.LeadTimeDays, m.Verified).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (s *Store) GetManufacturer(ctx context.Context, id string) (*models.Manufacturer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+manufacturerCols+` FROM manufacturers WHERE id=$1`, id)
	m, err := scanManufacturer(row)
	if noRows(err) {
		return nil, nil
	}
	return m, err
}

func (s *Store) GetManufacturerByUserID(ctx context.Context, userID string) (*models.Manufacturer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+manufacturerCols+` FROM manufacturers WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`, userID)
	m, err := scanManufacturer(row)
	if noRows(err) {
		return nil, nil
	}
	return m, err
}

func (s *Store) ListManufacturers(ctx context.Context, f storage.ManufacturerFilter) ([]models.Manufacturer, error) {
	query := `SELECT ` + manufacturerCols + ` FROM manufacturers`
	var clauses []string
	var args []any
	if f.Parish != "" {
		args = append(args, f.Parish)
		clauses = append(clauses, fmt.Sprintf(`LOWER(parish) = LOWER($%d)`, len(args)))
	}
	if f.VerifiedOnly {
		clauses = append(clauses, `verified`)
	}
	if f.Capability != "" {
		args = append(args, f.Capability)
		clauses = append(clauses, fmt.Sprintf(`$%d ILIKE ANY (capabilities)`, len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Manufacturer{}
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *Store) UpdateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	query := `
        UPDATE manufacturers
        SET company_name=$1, parish=$2, description=$3, capabilities=$4,
            min_order_qty=$5, lead_time_days=$6, verified=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		m.CompanyName, m.Parish, m.Description, pq.StringArray(m.Capabilities),
		m.MinOrderQty, m.LeadTimeDays, m.Verified, m.ID).
		Scan(&m.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}

// Brands

func (s *Store) CreateBrand(ctx context.Context, b *models.Brand) error {
	if b.ID == "" {
		b.ID = newID()
	}
	query := `
        INSERT INTO brands (id, user_id, company_name, category, description, website)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		b.ID, b.UserID, b.CompanyName, b.Category, b.Description, b.Website).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (s *Store) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	b := &models.Brand{}
	err := s.db.GetContext(ctx, b, `SELECT * FROM brands WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (s *Store) GetBrandByUserID(ctx context.Context, userID string) (*models.Brand, error) {
	b := &models.Brand{}
	query := `SELECT * FROM brands WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	err := s.db.GetContext(ctx, b, query, userID)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (s *Store) ListBrands(ctx context.Context) ([]models.Brand, error) {
	out := []models.Brand{}
	err := s.db.SelectContext(ctx, &out, `SELECT * FROM brands ORDER BY created_at DESC`)
	return out, err
}

func (s *Store) UpdateBrand(ctx context.Context, b *models.Brand) error {
	query := `
        UPDATE brands
        SET company_name=$1, category=$2, description=$3, website=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		b.CompanyName, b.Category, b.Description, b.Website, b.ID).
		Scan(&b.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}

// Designers

func (s *Store) CreateDesigner(ctx context.Context, d *models.Designer) error {
	if d.ID == "" {
		d.ID = newID()
	}
	query := `
        INSERT INTO designers (id, user_id, specialty, portfolio_url, bio)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		d.ID, d.UserID, d.Specialty, d.PortfolioURL, d.Bio).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (s *Store) GetDesigner(ctx context.Context, id string) (*models.Designer, error) {
	d := &models.Designer{}
	err := s.db.GetContext(ctx, d, `SELECT * FROM designers WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (s *Store) GetDesignerByUserID(ctx context.Context, userID string) (*models.Designer, error) {
	d := &models.Designer{}
	query := `SELECT * FROM designers WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	err := s.db.GetContext(ctx, d, query, userID)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (s *Store) ListDesigners(ctx context.Context) ([]models.Designer, error) {
	out := []models.Designer{}
	err := s.db.SelectContext(ctx, &out, `SELECT * FROM designers ORDER BY created_at DESC`)
	return out, err
}

func (s *Store) UpdateDesigner(ctx context.Context, d *models.Designer) error {
	query := `
        UPDATE designers
        SET specialty=$1, portfolio_url=$2, bio=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query, d.Specialty, d.PortfolioURL, d.Bio, d.ID).
		Scan(&d.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}

// Creators

func (s *Store) CreateCreator(ctx context.Context, c *models.Creator) error {
	if c.ID == "" {
		c.ID = newID()
	}
	query := `
        INSERT INTO creators (id, user_id, medium, bio)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query, c.ID, c.UserID, c.Medium, c.Bio).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *Store) GetCreator(ctx context.Context, id string) (*models.Creator, error) {
	c := &models.Creator{}
	err := s.db.GetContext(ctx, c, `SELECT * FROM creators WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *Store) GetCreatorByUserID(ctx context.Context, userID string) (*models.Creator, error) {
	c := &models.Creator{}
	query := `SELECT * FROM creators WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	err := s.db.GetContext(ctx, c, query, userID)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *Store) ListCreators(ctx context.Context) ([]models.Creator, error) {
	out := []models.Creator{}
	err := s.db.SelectContext(ctx, &out, `SELECT * FROM creators ORDER BY created_at DESC`)
	return out, err
}

func (s *Store) UpdateCreator(ctx context.Context, c *models.Creator) error {
	query := `
        UPDATE creators
        SET medium=$1, bio=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query, c.Medium, c.Bio, c.ID).Scan(&c.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}

// Financial institutions

func (s *Store) CreateInstitution(ctx context.Context, fi *models.FinancialInstitution) error {
	if fi.ID == "" {
		fi.ID = newID()
	}
	query := `
        INSERT INTO financial_institutions (id, user_id, institution_name, institution_type)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`
	return s.db.QueryRowContext(ctx, query,
		fi.ID, fi.UserID, fi.InstitutionName, fi.InstitutionType).
		Scan(&fi.CreatedAt, &fi.UpdatedAt)
}

func (s *Store) GetInstitution(ctx context.Context, id string) (*models.FinancialInstitution, error) {
	fi := &models.FinancialInstitution{}
	err := s.db.GetContext(ctx, fi, `SELECT * FROM financial_institutions WHERE id=$1`, id)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return fi, nil
}

func (s *Store) GetInstitutionByUserID(ctx context.Context, userID string) (*models.FinancialInstitution, error) {
	fi := &models.FinancialInstitution{}
	query := `SELECT * FROM financial_institutions WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	err := s.db.GetContext(ctx, fi, query, userID)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return fi, nil
}

func (s *Store) ListInstitutions(ctx context.Context) ([]models.FinancialInstitution, error) {
	out := []models.FinancialInstitution{}
	err := s.db.SelectContext(ctx, &out, `SELECT * FROM financial_institutions ORDER BY created_at DESC`)
	return out, err
}

func (s *Store) UpdateInstitution(ctx context.Context, fi *models.FinancialInstitution) error {
	query := `
        UPDATE financial_institutions
        SET institution_name=$1, institution_type=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query, fi.InstitutionName, fi.InstitutionType, fi.ID).
		Scan(&fi.UpdatedAt)
	if noRows(err) {
		return nil
	}
	return err
}
