package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-production-service/internal/article"
	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	"github.com/fekuna/omnipos-production-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.Article) error {
	query := `
		INSERT INTO production_articles (
			id, merchant_id, article_number, order_id, planned_quantity, linking_type,
			priority, status, progress, flow, ledger, final_quality_confirmed,
			final_quality_remarks, version, created_at, updated_at
		) VALUES (
			:id, :merchant_id, :article_number, :order_id, :planned_quantity, :linking_type,
			:priority, :status, :progress, :flow, :ledger, :final_quality_confirmed,
			:final_quality_remarks, :version, :created_at, :updated_at
		)
	`
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Article, error) {
	var a model.Article
	query := `SELECT * FROM production_articles WHERE id = $1 AND merchant_id = $2`
	err := r.DB.GetContext(ctx, &a, query, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) FindByOrderLine(ctx context.Context, merchantID, orderID, articleNumber string) (*model.Article, error) {
	var a model.Article
	query := `
		SELECT * FROM production_articles
		WHERE merchant_id = $1 AND order_id = $2 AND article_number = $3
		LIMIT 1
	`
	err := r.DB.GetContext(ctx, &a, query, merchantID, orderID, articleNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ArticleFilters) ([]model.Article, int, error) {
	var items []model.Article
	var count int

	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.OrderID != "" {
		conditions = append(conditions, "order_id = :order_id")
		args["order_id"] = f.OrderID
	}
	if f.ArticleNumber != "" {
		conditions = append(conditions, "article_number = :article_number")
		args["article_number"] = f.ArticleNumber
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM production_articles" + whereClause
	cstmt, err := r.DB.PrepareNamedContext(ctx, countQuery)
	if err != nil {
		return nil, 0, err
	}
	defer cstmt.Close()
	if err := cstmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM production_articles" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// Update writes a only if nobody else has written since it was loaded.
func (r *PGRepository) Update(ctx context.Context, a *model.Article) error {
	query := `
		UPDATE production_articles SET
			status = :status,
			progress = :progress,
			ledger = :ledger,
			final_quality_confirmed = :final_quality_confirmed,
			final_quality_remarks = :final_quality_remarks,
			version = :version + 1,
			updated_at = :updated_at
		WHERE id = :id AND merchant_id = :merchant_id AND version = :version
	`
	res, err := r.DB.NamedExecContext(ctx, query, a)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return article.ErrVersionConflict
	}
	a.Version++
	return nil
}
