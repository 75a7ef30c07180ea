package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	"github.com/fekuna/omnipos-production-service/internal/model"
	_ "github.com/jackc/pgx/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlesTable = `
	CREATE TEMP TABLE production_articles (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		article_number TEXT NOT NULL,
		order_id TEXT NOT NULL DEFAULT '',
		planned_quantity INT NOT NULL,
		linking_type TEXT NOT NULL,
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		progress INT NOT NULL,
		flow JSONB NOT NULL,
		ledger JSONB NOT NULL,
		final_quality_confirmed BOOLEAN NOT NULL,
		final_quality_remarks TEXT NOT NULL,
		version INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`

// testDB connects to PRODUCTION_TEST_PG_DSN with a single connection so the
// temp table is visible to every query.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("PRODUCTION_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("PRODUCTION_TEST_PG_DSN not set")
	}
	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(articlesTable)
	require.NoError(t, err)
	return db
}

func TestFindAll_CountsAndPagesOnOneConnection(t *testing.T) {
	r := NewPGRepository(testDB(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, merchantID := range []string{"m-1", "m-1", "m-1", "m-2"} {
		require.NoError(t, r.Create(ctx, &model.Article{
			ID:              fmt.Sprintf("art-%d", i),
			MerchantID:      merchantID,
			ArticleNumber:   "SW-100",
			PlannedQuantity: 10,
			LinkingType:     "Manual Linking",
			Priority:        "normal",
			Status:          "Pending",
			Flow:            types.JSONText(`{}`),
			Ledger:          types.JSONText(`{}`),
			Version:         1,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:       base,
		}))
	}

	// The count must not hold the only connection while the page is read.
	items, total, err := r.FindAll(ctx, &dto.ArticleFilters{MerchantID: "m-1", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "art-2", items[0].ID)
}
