package product

import (
	"context"

	"github.com/fekuna/omnipos-production-service/internal/model"
)

type Repository interface {
	// FindProcessSteps returns the ordered steps of the product with the given
	// article number, or an empty slice if no such product exists.
	FindProcessSteps(ctx context.Context, merchantID, articleNumber string) ([]model.ProcessStep, error)
}
