package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

func TestRfqRoundTrip(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	expires := time.Now().UTC().Add(48 * time.Hour)
	in := models.Rfq{
		BrandID:     "seed-brand-irie",
		Title:       "1000 canvas tote bags",
		Description: "12oz canvas, single colour print.",
		Category:    "apparel",
		Quantity:    1000,
		BudgetCents: 45_000_000,
		Status:      models.RfqStatusActive,
		ExpiresAt:   &expires,
		Requirements: models.RfqRequirements{
			Packaging: "bundles of 50",
		},
	}
	created := in
	require.NoError(t, s.CreateRfq(ctx, &created))
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.GetRfq(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// identical except server-assigned id and timestamps
	assert.Equal(t, in.BrandID, got.BrandID)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, in.Category, got.Category)
	assert.Equal(t, in.Quantity, got.Quantity)
	assert.Equal(t, in.BudgetCents, got.BudgetCents)
	assert.Equal(t, in.Status, got.Status)
	assert.Equal(t, in.Requirements, got.Requirements)
}

func TestRfqExpiryPresentation(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Hour)
	overdue := models.Rfq{
		BrandID:   "seed-brand-irie",
		Title:     "last season's run",
		Quantity:  100,
		Status:    models.RfqStatusActive,
		ExpiresAt: &past,
	}
	require.NoError(t, s.CreateRfq(ctx, &overdue))

	// every read path reports the same presented status
	got, err := s.GetRfq(ctx, overdue.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RfqStatusExpired, got.Status)

	all, err := s.ListRfqs(ctx, storage.RfqFilter{})
	require.NoError(t, err)
	for _, r := range all {
		if r.ID == overdue.ID {
			assert.Equal(t, models.RfqStatusExpired, r.Status)
		}
	}

	mine, err := s.ListRfqsByBrand(ctx, "seed-brand-irie")
	require.NoError(t, err)
	found := false
	for _, r := range mine {
		if r.ID == overdue.ID {
			found = true
			assert.Equal(t, models.RfqStatusExpired, r.Status)
		}
	}
	assert.True(t, found, "brand listing must include the overdue RFQ")

	// the active board drops it
	board, err := s.ListRfqs(ctx, storage.RfqFilter{Status: models.RfqStatusActive})
	require.NoError(t, err)
	for _, r := range board {
		assert.NotEqual(t, overdue.ID, r.ID)
	}

	// the stored record keeps its active status
	stored := s.rfqs[overdue.ID]
	assert.Equal(t, models.RfqStatusActive, stored.Status)
}

func TestGetNotFoundIsNilNil(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	u, err := s.GetUser(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, u)

	r, err := s.GetRfq(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, r)

	la, err := s.GetLoanApplication(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, la)
}

func TestListsNeverNil(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	resps, err := s.ListResponsesByRfq(ctx, "no-such-rfq")
	require.NoError(t, err)
	assert.NotNil(t, resps)
	assert.Empty(t, resps)

	threads, err := s.ListThreads(ctx, "no-such-user")
	require.NoError(t, err)
	assert.NotNil(t, threads)
}

func TestDuplicateProfileReturnsMostRecent(t *testing.T) {
	// No unique constraint guards duplicate profiles for one user; the
	// contract is that the lookup returns the latest created row.
	s := New(nil)
	ctx := context.Background()

	first := models.Brand{UserID: "u-dup", CompanyName: "First Co"}
	second := models.Brand{UserID: "u-dup", CompanyName: "Second Co"}
	require.NoError(t, s.CreateBrand(ctx, &first))
	require.NoError(t, s.CreateBrand(ctx, &second))

	got, err := s.GetBrandByUserID(ctx, "u-dup")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "Second Co", got.CompanyName)
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	m, err := s.GetManufacturer(ctx, "seed-mfg-portroyal")
	require.NoError(t, err)
	require.NotNil(t, m)

	createdBefore := m.CreatedAt
	updatedBefore := m.UpdatedAt
	time.Sleep(2 * time.Millisecond)
	m.Description = "Updated description"
	require.NoError(t, s.UpdateManufacturer(ctx, m))

	got, err := s.GetManufacturer(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.After(updatedBefore))
	assert.True(t, got.CreatedAt.Equal(createdBefore), "CreatedAt must not move")
}

func TestAwardFlagOnly(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	resp := models.RfqResponse{
		RfqID:          "seed-rfq-tees",
		ManufacturerID: "seed-mfg-bluemountain",
		PriceCents:     55_000_000,
		LeadTimeDays:   28,
		Notes:          "Includes neck labels.",
	}
	require.NoError(t, s.CreateRfqResponse(ctx, &resp))

	require.NoError(t, s.SetRfqResponseAwarded(ctx, resp.ID, true))
	got, err := s.GetRfqResponse(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAwarded)
	assert.Equal(t, resp.PriceCents, got.PriceCents)
}

func TestThreadsAndUnread(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	a, b := "user-a", "user-b"
	require.NoError(t, s.CreateMessage(ctx, &models.Message{SenderID: a, RecipientID: b, Body: "hello"}))
	require.NoError(t, s.CreateMessage(ctx, &models.Message{SenderID: b, RecipientID: a, Body: "hi"}))
	require.NoError(t, s.CreateMessage(ctx, &models.Message{SenderID: b, RecipientID: a, Body: "got samples?"}))

	threads, err := s.ListThreads(ctx, a)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, b, threads[0].CounterpartID)
	assert.Equal(t, "got samples?", threads[0].LastMessage.Body)
	assert.Equal(t, 2, threads[0].UnreadCount)

	require.NoError(t, s.MarkConversationRead(ctx, a, b))
	threads, err = s.ListThreads(ctx, a)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, 0, threads[0].UnreadCount)

	conv, err := s.ListConversation(ctx, a, b)
	require.NoError(t, err)
	require.Len(t, conv, 3)
	assert.Equal(t, "hello", conv[0].Body)
}

func TestManufacturerFilter(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	verified, err := s.ListManufacturers(ctx, storage.ManufacturerFilter{VerifiedOnly: true})
	require.NoError(t, err)
	for _, m := range verified {
		assert.True(t, m.Verified)
	}

	kgn, err := s.ListManufacturers(ctx, storage.ManufacturerFilter{Parish: "kingston"})
	require.NoError(t, err)
	require.NotEmpty(t, kgn)
	for _, m := range kgn {
		assert.Equal(t, "Kingston", m.Parish)
	}

	sew, err := s.ListManufacturers(ctx, storage.ManufacturerFilter{Capability: "cut-and-sew"})
	require.NoError(t, err)
	require.NotEmpty(t, sew)
}

func TestInstitutionSeesApplicationsToItsProducts(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	la := models.LoanApplication{
		ApplicantUserID: "seed-user-irie",
		LoanProductID:   "seed-loan-working-capital",
		AmountCents:     10_000_000,
		Purpose:         "fabric purchase",
	}
	require.NoError(t, s.CreateLoanApplication(ctx, &la))
	assert.Equal(t, models.LoanStatusPending, la.Status)

	mine, err := s.ListLoanApplicationsByApplicant(ctx, "seed-user-irie")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	inst, err := s.ListLoanApplicationsByInstitution(ctx, "seed-fi-caribcredit")
	require.NoError(t, err)
	require.Len(t, inst, 1)
	assert.Equal(t, la.ID, inst[0].ID)
}

func TestSeedDataPresent(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	mfgs, err := s.ListManufacturers(ctx, storage.ManufacturerFilter{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(mfgs), 2)

	rfqs, err := s.ListRfqs(ctx, storage.RfqFilter{Status: models.RfqStatusActive})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(rfqs), 2)

	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(courses), 3)

	products, err := s.ListLoanProducts(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(products), 2)
}
