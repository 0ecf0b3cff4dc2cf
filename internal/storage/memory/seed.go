package memory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jamakers/platform/pkg/models"
)

// SeedPassword is the password every seeded demo account accepts.
const SeedPassword = "makers123"

// seed loads deterministic demo fixtures: an admin, manufacturers, brands, a
// lender with loan products, raw materials with suppliers, active RFQs and
// courses. Fixture data only; nothing here is derived state.
func (s *Store) seed() {
	ctx := context.Background()
	// MinCost keeps construction cheap; these are demo credentials.
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	pw := string(hash)

	mkUser := func(id, email, first, last, role string) {
		_ = s.CreateUser(ctx, &models.User{
			ID: id, Email: email, PasswordHash: pw,
			FirstName: first, LastName: last, Role: role, Currency: "JMD",
		})
	}

	mkUser("seed-user-admin", "admin@jamakers.example", "Ada", "Wint", models.RoleAdmin)

	mkUser("seed-user-bluemountain", "ops@bluemountain.example", "Devon", "Clarke", models.RoleManufacturer)
	_ = s.CreateManufacturer(ctx, &models.Manufacturer{
		ID: "seed-mfg-bluemountain", UserID: "seed-user-bluemountain",
		CompanyName: "Blue Mountain Apparel Co.", Parish: "Kingston",
		Description:  "Cut-and-sew garment manufacturing, small batch friendly.",
		Capabilities: []string{"cut-and-sew", "screen-printing", "embroidery"},
		MinOrderQty:  50, LeadTimeDays: 21, Verified: true,
	})

	mkUser("seed-user-portroyal", "hello@portroyalfoods.example", "Marcia", "Bennett", models.RoleManufacturer)
	_ = s.CreateManufacturer(ctx, &models.Manufacturer{
		ID: "seed-mfg-portroyal", UserID: "seed-user-portroyal",
		CompanyName: "Port Royal Foods Ltd.", Parish: "St. Catherine",
		Description:  "Co-packing for sauces, spices and preserves. HACCP certified line.",
		Capabilities: []string{"co-packing", "bottling", "labeling"},
		MinOrderQty:  500, LeadTimeDays: 30, Verified: false,
	})

	_ = s.CreateCertification(ctx, &models.Certification{
		ID: "seed-cert-haccp", ManufacturerID: "seed-mfg-portroyal",
		Name: "HACCP", Issuer: "Bureau of Standards Jamaica",
	})

	mkUser("seed-user-irie", "team@iriewear.example", "Tanya", "Gordon", models.RoleBrand)
	_ = s.CreateBrand(ctx, &models.Brand{
		ID: "seed-brand-irie", UserID: "seed-user-irie",
		CompanyName: "Irie Wear", Category: "apparel",
		Description: "Streetwear inspired by Jamaican sound system culture.",
		Website:     "https://iriewear.example",
	})

	mkUser("seed-user-yaadspice", "orders@yaadspice.example", "Oneil", "Campbell", models.RoleBrand)
	_ = s.CreateBrand(ctx, &models.Brand{
		ID: "seed-brand-yaadspice", UserID: "seed-user-yaadspice",
		CompanyName: "Yaad Spice", Category: "food",
		Description: "Small-batch jerk seasonings and pepper sauces.",
		Website:     "https://yaadspice.example",
	})

	mkUser("seed-user-lender", "sme@caribcredit.example", "Paul", "Reid", models.RoleInstitution)
	_ = s.CreateInstitution(ctx, &models.FinancialInstitution{
		ID: "seed-fi-caribcredit", UserID: "seed-user-lender",
		InstitutionName: "CaribCredit SME Fund", InstitutionType: "credit_union",
	})
	_ = s.CreateLoanProduct(ctx, &models.LoanProduct{
		ID: "seed-loan-working-capital", InstitutionID: "seed-fi-caribcredit",
		Name: "Working Capital Advance", Description: "Short-term inventory financing for makers.",
		MaxAmountCents: 250_000_000, RatePercent: 9.5, TermMonths: 12,
	})
	_ = s.CreateLoanProduct(ctx, &models.LoanProduct{
		ID: "seed-loan-equipment", InstitutionID: "seed-fi-caribcredit",
		Name: "Equipment Loan", Description: "Machinery and plant upgrades.",
		MaxAmountCents: 1_000_000_000, RatePercent: 7.25, TermMonths: 48,
	})

	expires := time.Now().UTC().Add(30 * 24 * time.Hour)
	_ = s.CreateRfq(ctx, &models.Rfq{
		ID: "seed-rfq-tees", BrandID: "seed-brand-irie",
		Title:       "500 heavyweight branded tees",
		Description: "240gsm cotton, two-colour front print, woven neck label.",
		Category:    "apparel", Quantity: 500, BudgetCents: 60_000_000,
		Status: models.RfqStatusActive, ExpiresAt: &expires,
		Requirements: models.RfqRequirements{
			Certifications: []string{},
			Packaging:      "individually poly-bagged",
			Labeling:       "woven neck label, hang tag",
		},
	})
	_ = s.CreateRfq(ctx, &models.Rfq{
		ID: "seed-rfq-sauce", BrandID: "seed-brand-yaadspice",
		Title:       "Co-pack run of 5oz scotch bonnet sauce",
		Description: "2000 bottles, shelf-stable, export labeling.",
		Category:    "food", Quantity: 2000, BudgetCents: 90_000_000,
		Status: models.RfqStatusActive, ExpiresAt: &expires,
		Requirements: models.RfqRequirements{
			Certifications: []string{"HACCP"},
			Packaging:      "glass bottle, tamper-evident cap",
			Labeling:       "export nutrition panel",
		},
	})

	mats := []models.RawMaterial{
		{ID: "seed-mat-cotton", Name: "Organic cotton jersey", Category: "textile", Unit: "kg", Description: "240gsm tubular knit."},
		{ID: "seed-mat-bottle", Name: "5oz glass woozy bottle", Category: "packaging", Unit: "unit", Description: "Clear flint glass with 24-400 neck."},
		{ID: "seed-mat-pepper", Name: "Scotch bonnet mash", Category: "ingredient", Unit: "kg", Description: "Fermented, 8% salt."},
		{ID: "seed-mat-bamboo", Name: "Bamboo fibre board", Category: "material", Unit: "sheet", Description: "Locally grown, kiln dried."},
	}
	for i := range mats {
		_ = s.CreateRawMaterial(ctx, &mats[i])
	}
	_ = s.CreateSupplier(ctx, &models.RawMaterialSupplier{
		ID: "seed-sup-kgn-textiles", RawMaterialID: "seed-mat-cotton",
		Name: "Kingston Textile Traders", Parish: "Kingston", UnitPriceCents: 120_000,
	})
	_ = s.CreateSupplier(ctx, &models.RawMaterialSupplier{
		ID: "seed-sup-glassworks", RawMaterialID: "seed-mat-bottle",
		Name: "Caribbean Glassworks", Parish: "St. Andrew", UnitPriceCents: 8_500,
	})

	courses := []models.Course{
		{ID: "seed-course-export", Title: "Export Readiness 101", Level: "beginner",
			Description: "Paperwork, certifications and logistics for first-time exporters.",
			Modules:     []string{"Registering your business", "Certifications", "Freight basics"}},
		{ID: "seed-course-costing", Title: "Product Costing for Makers", Level: "intermediate",
			Description: "Landed cost, margins and quoting in minor currency units.",
			Modules:     []string{"Bill of materials", "Overheads", "Quoting"}},
		{ID: "seed-course-quality", Title: "Quality Systems on a Budget", Level: "intermediate",
			Description: "Practical QA for small factories.",
			Modules:     []string{"Incoming inspection", "In-process checks", "Corrective actions"}},
	}
	for i := range courses {
		_ = s.CreateCourse(ctx, &courses[i])
	}

	s.logger.Info("memory store seeded",
		"users", len(s.users),
		"manufacturers", len(s.manufacturers),
		"rfqs", len(s.rfqs),
	)
}
