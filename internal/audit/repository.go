package audit

import (
	"context"

	"github.com/fekuna/omnipos-production-service/internal/audit/dto"
	"github.com/fekuna/omnipos-production-service/internal/model"
)

type Repository interface {
	Append(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filters *dto.AuditFilters) ([]model.AuditLog, int, error)
}
