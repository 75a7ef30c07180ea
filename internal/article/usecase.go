package article

import (
	"context"

	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	auditdto "github.com/fekuna/omnipos-production-service/internal/audit/dto"
	"github.com/fekuna/omnipos-production-service/internal/model"
	"github.com/fekuna/omnipos-production-service/internal/production"
)

type UseCase interface {
	CreateArticle(ctx context.Context, input *dto.CreateArticleInput) (*dto.Result, error)
	GetArticle(ctx context.Context, merchantID, id string) (*production.Article, error)
	ListArticles(ctx context.Context, filters *dto.ArticleFilters) ([]*production.Article, int, error)
	GetFloorStatus(ctx context.Context, merchantID, id string) ([]production.FloorStatus, error)
	GetProgress(ctx context.Context, merchantID, id string) (int, error)

	UpdateCompleted(ctx context.Context, input *dto.UpdateCompletedInput) (*dto.Result, error)
	Transfer(ctx context.Context, input *dto.TransferInput) (*dto.Result, error)
	RecordGrading(ctx context.Context, input *dto.RecordGradingInput) (*dto.Result, error)
	ShiftM2(ctx context.Context, input *dto.ShiftM2Input) (*dto.Result, error)
	ConfirmFinalQuality(ctx context.Context, input *dto.ConfirmFinalQualityInput) (*dto.Result, error)
	RepairTransfer(ctx context.Context, input *dto.RepairTransferInput) (*dto.Result, error)
	RunConsistencyRepair(ctx context.Context, ref *dto.ArticleRef) (*dto.Result, error)

	ListAuditTrail(ctx context.Context, filters *auditdto.AuditFilters) ([]model.AuditLog, int, error)
}
