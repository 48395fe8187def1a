package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogDocs() []*csc.SearchDocument {
	return []*csc.SearchDocument{
		{SKU: "WPN-001", Name: "Laser Rifle", Description: "<p>A rifle that fires laser pulses.</p>", Cost: 3500},
		{SKU: "WPN-002", Name: "Laser Pistol", Description: "<p>A compact sidearm for close work.</p>", Cost: 1200},
		{SKU: "VEH-010", Name: "Grav Sled", Description: "<p>Cargo hauler with a grav plate.</p>", Cost: 1_250_000, Image: "/img/products/VEH-010.png"},
	}
}

func setupIndex(t *testing.T) (*sqlite.SearchIndex, *sqlite.DB) {
	t.Helper()
	db := setupTestDB(t)
	idx := sqlite.NewSearchIndex(db)
	require.NoError(t, idx.Index(context.Background(), catalogDocs()))
	return idx, db
}

func skus(results []*csc.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.SKU)
	}
	return out
}

func TestSearchIndex_Search(t *testing.T) {
	t.Parallel()

	t.Run("matches whole terms", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "sled", csc.SearchOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"VEH-010"}, skus(results))
	})

	t.Run("matches partial terms with prefix", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "las", csc.SearchOptions{Prefix: true})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"WPN-001", "WPN-002"}, skus(results))
	})

	t.Run("partial terms do not match without prefix", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "las", csc.SearchOptions{})

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("is case insensitive", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "GRAV", csc.SearchOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"VEH-010"}, skus(results))
	})

	t.Run("ranks documents matching more terms first", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "laser rifle", csc.SearchOptions{Prefix: true})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "WPN-001", results[0].SKU)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("returns stored fields", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "cargo", csc.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Grav Sled", results[0].Name)
		assert.Equal(t, "<p>Cargo hauler with a grav plate.</p>", results[0].Description)
		assert.InDelta(t, 1_250_000.0, results[0].Cost, 0)
		assert.Equal(t, "/img/products/VEH-010.png", results[0].Image)
	})

	t.Run("matches sku and cost fields", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		bySKU, err := idx.Search(context.Background(), "VEH", csc.SearchOptions{Prefix: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"VEH-010"}, skus(bySKU))

		byCost, err := idx.Search(context.Background(), "1200", csc.SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"WPN-002"}, skus(byCost))
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "laser", csc.SearchOptions{Limit: 1})

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("query without terms returns no results", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		results, err := idx.Search(context.Background(), "  -- ", csc.SearchOptions{Prefix: true})

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("operator words are treated as terms", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)

		_, err := idx.Search(context.Background(), "NOT OR AND NEAR", csc.SearchOptions{Prefix: true})

		require.NoError(t, err)
	})
}

func TestSearchIndex_Index(t *testing.T) {
	t.Parallel()

	t.Run("replaces previous documents", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)
		ctx := context.Background()

		require.NoError(t, idx.Index(ctx, []*csc.SearchDocument{{SKU: "NEW-1", Name: "Cargo Drone"}}))

		rifles, err := idx.Search(ctx, "rifle", csc.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, rifles)

		drones, err := idx.Search(ctx, "drone", csc.SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"NEW-1"}, skus(drones))
	})

	t.Run("skips reindexing identical documents", func(t *testing.T) {
		t.Parallel()

		idx, db := setupIndex(t)
		ctx := context.Background()

		// Remove rows behind the index's back; an identical Index call
		// must not rebuild them.
		_, err := db.ExecContext(ctx, `DELETE FROM search_documents`)
		require.NoError(t, err)

		require.NoError(t, idx.Index(ctx, catalogDocs()))

		results, err := idx.Search(ctx, "laser", csc.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("rejects duplicate SKUs and keeps previous documents", func(t *testing.T) {
		t.Parallel()

		idx, _ := setupIndex(t)
		ctx := context.Background()

		err := idx.Index(ctx, []*csc.SearchDocument{
			{SKU: "NEW-1", Name: "Cargo Drone"},
			{SKU: "NEW-1", Name: "Cargo Drone Mk II"},
		})

		require.Error(t, err)
		assert.Equal(t, csc.ECONFLICT, csc.ErrorCode(err))

		results, err := idx.Search(ctx, "rifle", csc.SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"WPN-001"}, skus(results))
	})

	t.Run("records document count", func(t *testing.T) {
		t.Parallel()

		_, db := setupIndex(t)

		var count int
		require.NoError(t, db.QueryRowContext(context.Background(), `SELECT document_count FROM search_meta WHERE id = 1`).Scan(&count))
		assert.Equal(t, 3, count)
	})
}

func TestMatchExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		prefix bool
		want   string
	}{
		{"single term", "laser", false, `"laser"`},
		{"prefix terms", "laser ri", true, `"laser"* OR "ri"*`},
		{"punctuation splits terms", "VEH-010", false, `"VEH" OR "010"`},
		{"quotes are dropped", `"grav"`, false, `"grav"`},
		{"empty", "   ", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sqlite.MatchExpression(tt.query, tt.prefix))
		})
	}
}
