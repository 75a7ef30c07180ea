package repository

import (
	"context"

	"github.com/fekuna/omnipos-production-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindProcessSteps(ctx context.Context, merchantID, articleNumber string) ([]model.ProcessStep, error) {
	query := `
        SELECT p.id AS product_id, p.article_number, s.step_name, s.sequence
        FROM products p
        JOIN product_process_steps s ON s.product_id = p.id
        WHERE p.article_number = $1
          AND (p.merchant_id = $2 OR $2 = '')
          AND p.is_active = TRUE
        ORDER BY s.sequence ASC
    `
	var steps []model.ProcessStep
	if err := r.DB.SelectContext(ctx, &steps, query, articleNumber, merchantID); err != nil {
		return nil, err
	}
	return steps, nil
}
