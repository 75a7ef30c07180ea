package dto

import "time"

type AuditFilters struct {
	MerchantID string
	ArticleID  string
	Floor      string
	Action     string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}
