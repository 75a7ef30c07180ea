package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-production-service/internal/audit/dto"
	"github.com/fekuna/omnipos-production-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Name() string { return "postgres" }

func (r *PGRepository) Append(ctx context.Context, e *model.AuditLog) error {
	query := `
        INSERT INTO production_audit_logs (
            id, merchant_id, article_id, article_number, action,
            floor, from_floor, to_floor, quantity, previous_value, new_value,
            quality_status, quality, remarks, created_by, created_at
        )
        VALUES (
            :id, :merchant_id, :article_id, :article_number, :action,
            :floor, :from_floor, :to_floor, :quantity, :previous_value, :new_value,
            :quality_status, :quality, :remarks, :created_by, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	if err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

func (r *PGRepository) List(ctx context.Context, f *dto.AuditFilters) ([]model.AuditLog, int, error) {
	var items []model.AuditLog
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.ArticleID != "" {
		conditions = append(conditions, "article_id = :article_id")
		args["article_id"] = f.ArticleID
	}
	if f.Floor != "" {
		conditions = append(conditions, "(floor = :floor OR from_floor = :floor OR to_floor = :floor)")
		args["floor"] = f.Floor
	}
	if f.Action != "" {
		conditions = append(conditions, "action = :action")
		args["action"] = f.Action
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM production_audit_logs" + whereClause
	cstmt, err := r.DB.PrepareNamedContext(ctx, countQuery)
	if err != nil {
		return nil, 0, err
	}
	defer cstmt.Close()
	if err := cstmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM production_audit_logs" + whereClause + " ORDER BY created_at DESC, id"
	if f.PageSize > 0 {
		page := max(f.Page, 1)
		offset := (page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
