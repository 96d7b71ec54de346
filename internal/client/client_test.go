package client_test

import (
	"context"
	"math"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoang-11jjk/RealEstatePro/internal/api"
	"github.com/hoang-11jjk/RealEstatePro/internal/client"
	"github.com/hoang-11jjk/RealEstatePro/internal/config"
	"github.com/hoang-11jjk/RealEstatePro/internal/models"
	"github.com/hoang-11jjk/RealEstatePro/internal/query"
	"github.com/hoang-11jjk/RealEstatePro/internal/store"
)

func i64(v int64) *int64 { return &v }

func setupTestServer(t *testing.T) (*client.Client, *store.FileStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "db.json"))
	require.NoError(t, err)

	cfg := &config.Config{
		CorsAllowOrigins:    "*",
		UploadBackend:       "local",
		UploadDir:           filepath.Join(dir, "uploads"),
		UploadBaseURL:       "/uploads",
		RateLimitBucketSize: 1000,
		RateLimitRefillRate: 1000,
	}
	srv := httptest.NewServer(api.SetupRouter(cfg, st))
	t.Cleanup(srv.Close)

	return client.New(srv.URL + "/api"), st
}

func seedListings(t *testing.T, st *store.FileStore) {
	t.Helper()
	seed := []models.Property{
		{Title: "Sunny Apartment", Description: "Bright two-bed place", Price: 3000, Location: "Quan 1", Type: models.TypeApartment, Status: models.StatusForSale, Visibility: models.VisibilityApproved},
		{Title: "Riverside Villa", Description: "Private pool", Price: 12000, Location: "Quan 2", Type: models.TypeVilla, Status: models.StatusForSale, Visibility: models.VisibilityApproved},
		{Title: "Cozy townhouse", Description: "Near the apartment towers", Price: 5000, Location: "Ha Noi", Type: models.TypeTownhouse, Status: models.StatusForRent, Visibility: models.VisibilityPending},
		{Title: "Land plot", Description: "Corner lot", Price: 0, Location: "Da Nang", Type: models.TypeLand, Status: models.StatusForSale, Visibility: models.VisibilityHidden},
	}
	for _, p := range seed {
		_, err := st.Insert(p)
		require.NoError(t, err)
	}
}

func TestClient_FetchAllUsesBareShape(t *testing.T) {
	c, st := setupTestServer(t)
	seedListings(t, st)

	items, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 4)
	// Store order: most-recently-created first.
	assert.Equal(t, "Land plot", items[0].Title)
}

func TestClient_FetchUsesEnvelope(t *testing.T) {
	c, st := setupTestServer(t)
	seedListings(t, st)

	result, err := c.Fetch(context.Background(), query.Filter{Status: models.StatusForSale}, query.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.Limit)
}

// The mirror and the server engine share one predicate implementation; this
// contract test pins their agreement on a fixed fixture set across the
// filter combinations the UI actually issues.
func TestClient_LocalFilterMatchesServerEngine(t *testing.T) {
	c, st := setupTestServer(t)
	seedListings(t, st)

	ctx := context.Background()
	all, err := c.FetchAll(ctx)
	require.NoError(t, err)

	filters := []query.Filter{
		{},
		{Keyword: "apartment"},
		{Location: "quan"},
		{Type: models.TypeVilla},
		{Status: models.StatusForSale},
		{Visibility: models.VisibilityApproved},
		{MinPrice: i64(3000), MaxPrice: i64(5000)},
		{MinPrice: i64(0), MaxPrice: i64(0)},
		{Keyword: "apartment", Status: models.StatusForSale, Visibility: models.VisibilityApproved},
	}

	for _, f := range filters {
		local := client.FilterLocal(all, f)

		remote, err := c.Fetch(ctx, f, query.Page{Page: 1, Limit: 100})
		require.NoError(t, err)

		localIDs := []int64{}
		for _, p := range local {
			localIDs = append(localIDs, p.ID)
		}
		remoteIDs := []int64{}
		for _, p := range remote.Items {
			remoteIDs = append(remoteIDs, p.ID)
		}
		assert.Equal(t, remoteIDs, localIDs, "filter %+v diverged between mirror and engine", f)
		assert.Equal(t, len(local), remote.Total)
	}
}

func TestClient_FetchHugePageIsEmptyNotError(t *testing.T) {
	c, st := setupTestServer(t)
	seedListings(t, st)

	result, err := c.Fetch(context.Background(), query.Filter{}, query.Page{Page: math.MaxInt, Limit: 9})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 4, result.Total)
}

func TestSequencer_DiscardsStaleResponses(t *testing.T) {
	var s client.Sequencer

	first := s.Next()
	second := s.Next()

	// The response to the older request resolves last; it must be discarded.
	assert.True(t, s.Accept(second))
	assert.False(t, s.Accept(first))
}

func TestClient_FetchLatest(t *testing.T) {
	c, st := setupTestServer(t)
	seedListings(t, st)

	result, fresh, err := c.FetchLatest(context.Background(), query.Filter{}, query.Page{})
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, 4, result.Total)
}
