package model

import (
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-production-service/internal/production"
	"github.com/jmoiron/sqlx/types"
)

// AuditLog is one append-only row of the production audit trail.
type AuditLog struct {
	ID            string             `db:"id" json:"id"`
	MerchantID    string             `db:"merchant_id" json:"merchant_id"`
	ArticleID     string             `db:"article_id" json:"article_id"`
	ArticleNumber string             `db:"article_number" json:"article_number"`
	Action        string             `db:"action" json:"action"`
	Floor         *string            `db:"floor" json:"floor"`
	FromFloor     *string            `db:"from_floor" json:"from_floor"`
	ToFloor       *string            `db:"to_floor" json:"to_floor"`
	Quantity      int                `db:"quantity" json:"quantity"`
	PreviousValue int                `db:"previous_value" json:"previous_value"`
	NewValue      int                `db:"new_value" json:"new_value"`
	QualityStatus *string            `db:"quality_status" json:"quality_status"`
	Quality       types.NullJSONText `db:"quality" json:"quality"`
	Remarks       string             `db:"remarks" json:"remarks"`
	CreatedBy     *string            `db:"created_by" json:"created_by"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

// AuditLogFromEvent stamps a domain event with its article and actor.
func AuditLogFromEvent(id string, a *production.Article, ev production.AuditEvent, userID string, at time.Time) *AuditLog {
	log := &AuditLog{
		ID:            id,
		MerchantID:    a.MerchantID,
		ArticleID:     a.ID,
		ArticleNumber: a.ArticleNumber,
		Action:        string(ev.Action),
		Floor:         floorName(ev.Floor),
		FromFloor:     floorName(ev.FromFloor),
		ToFloor:       floorName(ev.ToFloor),
		Quantity:      ev.Quantity,
		PreviousValue: ev.PreviousValue,
		NewValue:      ev.NewValue,
		Remarks:       ev.Remarks,
		CreatedAt:     at,
	}
	if ev.QualityStatus != "" {
		s := ev.QualityStatus
		log.QualityStatus = &s
	}
	if ev.Quality != nil {
		if data, err := json.Marshal(ev.Quality); err == nil {
			log.Quality = types.NullJSONText{JSONText: data, Valid: true}
		}
	}
	if userID != "" && userID != "unknown" {
		log.CreatedBy = &userID
	}
	return log
}

func floorName(f production.Floor) *string {
	if !f.Valid() {
		return nil
	}
	s := f.String()
	return &s
}
