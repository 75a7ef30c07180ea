package article

import (
	"context"

	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	"github.com/fekuna/omnipos-production-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, a *model.Article) error
	// FindByID returns nil, nil when the article does not exist.
	FindByID(ctx context.Context, merchantID, id string) (*model.Article, error)
	FindByOrderLine(ctx context.Context, merchantID, orderID, articleNumber string) (*model.Article, error)
	FindAll(ctx context.Context, filters *dto.ArticleFilters) ([]model.Article, int, error)
	// Update persists a when the stored version equals a.Version and bumps
	// a.Version. A stale version yields ErrVersionConflict.
	Update(ctx context.Context, a *model.Article) error
}
