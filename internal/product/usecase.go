package product

import (
	"github.com/fekuna/omnipos-production-service/internal/production"
)

// UseCase resolves product definitions for the floor flow resolver.
type UseCase interface {
	production.ProcessStepFinder
}
