package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-production-service/internal/production"
	"github.com/jmoiron/sqlx/types"
)

type Article struct {
	ID                    string         `db:"id"`
	MerchantID            string         `db:"merchant_id"`
	ArticleNumber         string         `db:"article_number"`
	OrderID               string         `db:"order_id"`
	PlannedQuantity       int            `db:"planned_quantity"`
	LinkingType           string         `db:"linking_type"`
	Priority              string         `db:"priority"`
	Status                string         `db:"status"`
	Progress              int            `db:"progress"`
	Flow                  types.JSONText `db:"flow"`   // JSONB
	Ledger                types.JSONText `db:"ledger"` // JSONB, keyed by floor name
	FinalQualityConfirmed bool           `db:"final_quality_confirmed"`
	FinalQualityRemarks   string         `db:"final_quality_remarks"`
	Version               int            `db:"version"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

func ArticleFromDomain(a *production.Article) (*Article, error) {
	flow, err := json.Marshal(a.Flow)
	if err != nil {
		return nil, fmt.Errorf("encode flow: %w", err)
	}
	ledger, err := json.Marshal(a.Ledger)
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return &Article{
		ID:                    a.ID,
		MerchantID:            a.MerchantID,
		ArticleNumber:         a.ArticleNumber,
		OrderID:               a.OrderID,
		PlannedQuantity:       a.PlannedQuantity,
		LinkingType:           string(a.LinkingType),
		Priority:              string(a.Priority),
		Status:                string(a.Status),
		Progress:              a.Progress,
		Flow:                  flow,
		Ledger:                ledger,
		FinalQualityConfirmed: a.FinalQualityConfirmed,
		FinalQualityRemarks:   a.FinalQualityRemarks,
		Version:               a.Version,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}, nil
}

func (m *Article) ToDomain() (*production.Article, error) {
	var flow production.Flow
	if err := json.Unmarshal(m.Flow, &flow); err != nil {
		return nil, fmt.Errorf("decode flow of article %s: %w", m.ID, err)
	}
	ledger := production.Ledger{}
	if len(m.Ledger) > 0 {
		if err := json.Unmarshal(m.Ledger, &ledger); err != nil {
			return nil, fmt.Errorf("decode ledger of article %s: %w", m.ID, err)
		}
	}
	return &production.Article{
		ID:                    m.ID,
		MerchantID:            m.MerchantID,
		ArticleNumber:         m.ArticleNumber,
		OrderID:               m.OrderID,
		PlannedQuantity:       m.PlannedQuantity,
		LinkingType:           production.ParseLinkingType(m.LinkingType),
		Priority:              production.ParsePriority(m.Priority),
		Status:                production.Status(m.Status),
		Progress:              m.Progress,
		Flow:                  flow,
		Ledger:                ledger,
		FinalQualityConfirmed: m.FinalQualityConfirmed,
		FinalQualityRemarks:   m.FinalQualityRemarks,
		Version:               m.Version,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}, nil
}
