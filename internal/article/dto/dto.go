package dto

import (
	"github.com/fekuna/omnipos-production-service/internal/audit"
	"github.com/fekuna/omnipos-production-service/internal/production"
)

type ArticleFilters struct {
	MerchantID    string
	OrderID       string
	ArticleNumber string
	Status        string
	Page          int
	PageSize      int
}

// Result is returned by every article mutation.
type Result struct {
	Article     *production.Article
	Warnings    []string
	Corrections []production.Correction
	// Audit reports the audit-trail side channel. A failed append never
	// fails the mutation.
	Audit audit.Outcome
}
