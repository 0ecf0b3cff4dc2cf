package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamakers/platform/pkg/models"
	"github.com/jamakers/platform/pkg/storage"
)

// fakeDocService is a minimal stand-in for the hosted document store: PUT
// upserts by id, GET by id, and GET on a collection with equality filters.
type fakeDocService struct {
	mu   sync.Mutex
	data map[string]map[string]json.RawMessage
}

func newFakeDocService() *fakeDocService {
	return &fakeDocService{data: make(map[string]map[string]json.RawMessage)}
}

func (f *fakeDocService) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/collections/"), "/")
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case len(parts) == 3 && parts[1] == "documents" && r.Method == http.MethodPut:
			col, id := parts[0], parts[2]
			raw := json.RawMessage{}
			if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			if f.data[col] == nil {
				f.data[col] = make(map[string]json.RawMessage)
			}
			f.data[col][id] = raw
			w.WriteHeader(http.StatusOK)

		case len(parts) == 3 && parts[1] == "documents" && r.Method == http.MethodGet:
			col, id := parts[0], parts[2]
			doc, ok := f.data[col][id]
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(doc)

		case len(parts) == 2 && parts[1] == "documents" && r.Method == http.MethodGet:
			col := parts[0]
			docs := []json.RawMessage{}
			for _, doc := range f.data[col] {
				if f.matches(doc, r.URL.Query()) {
					docs = append(docs, doc)
				}
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"documents": docs})

		default:
			http.NotFound(w, r)
		}
	})
}

func (f *fakeDocService) matches(doc json.RawMessage, query map[string][]string) bool {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return false
	}
	for k, vs := range query {
		if k == "sort" {
			continue
		}
		if fmt.Sprint(fields[k]) != vs[0] {
			return false
		}
	}
	return true
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	srv := httptest.NewServer(newFakeDocService().handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, nil)
}

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// not found is (nil, nil)
	u, err := s.GetUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)

	created := models.User{Email: "devon@example.com", Role: models.RoleManufacturer}
	require.NoError(t, s.CreateUser(ctx, &created))
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "devon@example.com", got.Email)

	byEmail, err := s.GetUserByEmail(ctx, "devon@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	byEmail, err = s.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)

	// update keeps CreatedAt, refreshes UpdatedAt
	got.FirstName = "Devon"
	require.NoError(t, s.UpdateUser(ctx, got))
	again, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Devon", again.FirstName)
	assert.Equal(t, created.CreatedAt.Unix(), again.CreatedAt.Unix())

	// updating a missing record is a no-op
	ghost := models.User{ID: "missing", Email: "ghost@example.com"}
	require.NoError(t, s.UpdateUser(ctx, &ghost))
	u, err = s.GetUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestManufacturerFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fixtures := []models.Manufacturer{
		{CompanyName: "A", Parish: "Kingston", Capabilities: []string{"cut-and-sew"}, Verified: true},
		{CompanyName: "B", Parish: "Kingston", Capabilities: []string{"bottling"}},
		{CompanyName: "C", Parish: "Portland", Capabilities: []string{"Cut-And-Sew"}, Verified: true},
	}
	for i := range fixtures {
		require.NoError(t, s.CreateManufacturer(ctx, &fixtures[i]))
	}

	out, err := s.ListManufacturers(ctx, storage.ManufacturerFilter{Parish: "kingston"})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	// capability match is case-insensitive
	out, err = s.ListManufacturers(ctx, storage.ManufacturerFilter{Capability: "cut-and-sew"})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = s.ListManufacturers(ctx, storage.ManufacturerFilter{VerifiedOnly: true})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = s.ListManufacturers(ctx, storage.ManufacturerFilter{Parish: "Clarendon"})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRfqExpiryPresentation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := models.Rfq{Title: "old", Quantity: 1, Status: models.RfqStatusActive, ExpiresAt: &past}
	live := models.Rfq{Title: "new", Quantity: 1, Status: models.RfqStatusActive, ExpiresAt: &future}
	require.NoError(t, s.CreateRfq(ctx, &expired))
	require.NoError(t, s.CreateRfq(ctx, &live))

	got, err := s.GetRfq(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RfqStatusExpired, got.Status)

	got, err = s.GetRfq(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RfqStatusActive, got.Status)

	// the board only lists the live one
	board, err := s.ListRfqs(ctx, storage.RfqFilter{Status: models.RfqStatusActive})
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, live.ID, board[0].ID)
}

func TestAwardFlag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	resp := models.RfqResponse{RfqID: "rfq-1", ManufacturerID: "mfg-1", PriceCents: 100}
	require.NoError(t, s.CreateRfqResponse(ctx, &resp))
	assert.False(t, resp.IsAwarded)

	require.NoError(t, s.SetRfqResponseAwarded(ctx, resp.ID, true))
	got, err := s.GetRfqResponse(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAwarded)

	// awarding a missing response is a no-op, not an error
	require.NoError(t, s.SetRfqResponseAwarded(ctx, "missing", true))
}
