package remote

import (
	"context"
	"strings"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func (s *Store) CreateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	if m.ID == "" {
		m.ID = newID()
	}
	storage.Touch(&m.CreatedAt, &m.UpdatedAt)
	return insertDoc(ctx, s, colManufacturers, m.ID, m)
}

func (s *Store) GetManufacturer(ctx context.Context, id string) (*models.Manufacturer, error) {
	return getDoc[models.Manufacturer](ctx, s, colManufacturers, id)
}

func (s *Store) GetManufacturerByUserID(ctx context.Context, userID string) (*models.Manufacturer, error) {
	out, err := queryDocs[models.Manufacturer](ctx, s, colManufacturers, map[string]string{"userId": userID})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

// ListManufacturers filters client-side; the document service only matches
// whole fields, not array membership or case folding.
func (s *Store) ListManufacturers(ctx context.Context, f storage.ManufacturerFilter) ([]models.Manufacturer, error) {
	all, err := queryDocs[models.Manufacturer](ctx, s, colManufacturers, nil)
	if err != nil {
		return nil, err
	}
	out := []models.Manufacturer{}
	for _, m := range all {
		if f.Parish != "" && !strings.EqualFold(m.Parish, f.Parish) {
			continue
		}
		if f.VerifiedOnly && !m.Verified {
			continue
		}
		if f.Capability != "" && !hasCapability(m.Capabilities, f.Capability) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func hasCapability(caps []string, want string) bool {
	for _, c := range caps {
		if strings.EqualFold(c, want) {
			return true
		}
	}
	return false
}

func (s *Store) UpdateManufacturer(ctx context.Context, m *models.Manufacturer) error {
	existing, err := getDoc[models.Manufacturer](ctx, s, colManufacturers, m.ID)
	if err != nil || existing == nil {
		return err
	}
	m.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &m.UpdatedAt)
	return replaceDoc(ctx, s, colManufacturers, m.ID, m)
}

func (s *Store) CreateBrand(ctx context.Context, b *models.Brand) error {
	if b.ID == "" {
		b.ID = newID()
	}
	storage.Touch(&b.CreatedAt, &b.UpdatedAt)
	return insertDoc(ctx, s, colBrands, b.ID, b)
}

func (s *Store) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	return getDoc[models.Brand](ctx, s, colBrands, id)
}

func (s *Store) GetBrandByUserID(ctx context.Context, userID string) (*models.Brand, error) {
	out, err := queryDocs[models.Brand](ctx, s, colBrands, map[string]string{"userId": userID})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (s *Store) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return queryDocs[models.Brand](ctx, s, colBrands, nil)
}

func (s *Store) UpdateBrand(ctx context.Context, b *models.Brand) error {
	existing, err := getDoc[models.Brand](ctx, s, colBrands, b.ID)
	if err != nil || existing == nil {
		return err
	}
	b.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &b.UpdatedAt)
	return replaceDoc(ctx, s, colBrands, b.ID, b)
}

func (s *Store) CreateDesigner(ctx context.Context, d *models.Designer) error {
	if d.ID == "" {
		d.ID = newID()
	}
	storage.Touch(&d.CreatedAt, &d.UpdatedAt)
	return insertDoc(ctx, s, colDesigners, d.ID, d)
}

func (s *Store) GetDesigner(ctx context.Context, id string) (*models.Designer, error) {
	return getDoc[models.Designer](ctx, s, colDesigners, id)
}

func (s *Store) GetDesignerByUserID(ctx context.Context, userID string) (*models.Designer, error) {
	out, err := queryDocs[models.Designer](ctx, s, colDesigners, map[string]string{"userId": userID})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (s *Store) ListDesigners(ctx context.Context) ([]models.Designer, error) {
	return queryDocs[models.Designer](ctx, s, colDesigners, nil)
}

func (s *Store) UpdateDesigner(ctx context.Context, d *models.Designer) error {
	existing, err := getDoc[models.Designer](ctx, s, colDesigners, d.ID)
	if err != nil || existing == nil {
		return err
	}
	d.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &d.UpdatedAt)
	return replaceDoc(ctx, s, colDesigners, d.ID, d)
}

func (s *Store) CreateCreator(ctx context.Context, c *models.Creator) error {
	if c.ID == "" {
		c.ID = newID()
	}
	storage.Touch(&c.CreatedAt, &c.UpdatedAt)
	return insertDoc(ctx, s, colCreators, c.ID, c)
}

func (s *Store) GetCreator(ctx context.Context, id string) (*models.Creator, error) {
	return getDoc[models.Creator](ctx, s, colCreators, id)
}

func (s *Store) GetCreatorByUserID(ctx context.Context, userID string) (*models.Creator, error) {
	out, err := queryDocs[models.Creator](ctx, s, colCreators, map[string]string{"userId": userID})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (s *Store) ListCreators(ctx context.Context) ([]models.Creator, error) {
	return queryDocs[models.Creator](ctx, s, colCreators, nil)
}

func (s *Store) UpdateCreator(ctx context.Context, c *models.Creator) error {
	existing, err := getDoc[models.Creator](ctx, s, colCreators, c.ID)
	if err != nil || existing == nil {
		return err
	}
	c.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &c.UpdatedAt)
	return replaceDoc(ctx, s, colCreators, c.ID, c)
}

func (s *Store) CreateInstitution(ctx context.Context, fi *models.FinancialInstitution) error {
	if fi.ID == "" {
		fi.ID = newID()
	}
	storage.Touch(&fi.CreatedAt, &fi.UpdatedAt)
	return insertDoc(ctx, s, colInstitutions, fi.ID, fi)
}

func (s *Store) GetInstitution(ctx context.Context, id string) (*models.FinancialInstitution, error) {
	return getDoc[models.FinancialInstitution](ctx, s, colInstitutions, id)
}

func (s *Store) GetInstitutionByUserID(ctx context.Context, userID string) (*models.FinancialInstitution, error) {
	out, err := queryDocs[models.FinancialInstitution](ctx, s, colInstitutions, map[string]string{"userId": userID})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (s *Store) ListInstitutions(ctx context.Context) ([]models.FinancialInstitution, error) {
	return queryDocs[models.FinancialInstitution](ctx, s, colInstitutions, nil)
}

func (s *Store) UpdateInstitution(ctx context.Context, fi *models.FinancialInstitution) error {
	existing, err := getDoc[models.FinancialInstitution](ctx, s, colInstitutions, fi.ID)
	if err != nil || existing == nil {
		return err
	}
	fi.CreatedAt = existing.CreatedAt
	storage.Touch(nil, &fi.UpdatedAt)
	return replaceDoc(ctx, s, colInstitutions, fi.ID, fi)
}
