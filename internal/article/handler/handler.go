package handler

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-production-service/internal/article"
	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	auditdto "github.com/fekuna/omnipos-production-service/internal/audit/dto"
	"github.com/fekuna/omnipos-production-service/internal/auth"
	"github.com/fekuna/omnipos-production-service/internal/production"
	"github.com/fekuna/omnipos-production-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ArticleHandler struct {
	uc     article.UseCase
	logger logger.ZapLogger
}

func NewArticleHandler(uc article.UseCase, log logger.ZapLogger) *ArticleHandler {
	return &ArticleHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ArticleHandler) CreateArticle(ctx context.Context, req *CreateArticleRequest) (*ArticleResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.CreateArticle(ctx, &dto.CreateArticleInput{
		MerchantID:      merchantID,
		ArticleNumber:   req.ArticleNumber,
		OrderID:         req.OrderID,
		PlannedQuantity: req.PlannedQuantity,
		LinkingType:     req.LinkingType,
		Priority:        req.Priority,
		UserID:          auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, h.toStatus("CreateArticle", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) GetArticle(ctx context.Context, req *ArticleRequest) (*ArticleResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}
	a, err := h.uc.GetArticle(ctx, merchantID, req.ArticleID)
	if err != nil {
		return nil, h.toStatus("GetArticle", err)
	}
	return &ArticleResponse{Article: mapArticle(a)}, nil
}

func (h *ArticleHandler) ListArticles(ctx context.Context, req *ListArticlesRequest) (*ListArticlesResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}
	items, total, err := h.uc.ListArticles(ctx, &dto.ArticleFilters{
		MerchantID:    merchantID,
		OrderID:       req.OrderID,
		ArticleNumber: req.ArticleNumber,
		Status:        req.Status,
		Page:          req.Page,
		PageSize:      req.PageSize,
	})
	if err != nil {
		return nil, h.toStatus("ListArticles", err)
	}
	out := make([]*ArticleMessage, len(items))
	for i, a := range items {
		out[i] = mapArticle(a)
	}
	return &ListArticlesResponse{Items: out, Total: total}, nil
}

func (h *ArticleHandler) GetFloorStatus(ctx context.Context, req *ArticleRequest) (*FloorStatusResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}
	floors, err := h.uc.GetFloorStatus(ctx, merchantID, req.ArticleID)
	if err != nil {
		return nil, h.toStatus("GetFloorStatus", err)
	}
	return &FloorStatusResponse{ArticleID: req.ArticleID, Floors: mapFloorStatuses(floors)}, nil
}

func (h *ArticleHandler) GetProgress(ctx context.Context, req *ArticleRequest) (*ProgressResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}
	p, err := h.uc.GetProgress(ctx, merchantID, req.ArticleID)
	if err != nil {
		return nil, h.toStatus("GetProgress", err)
	}
	return &ProgressResponse{ArticleID: req.ArticleID, Progress: p}, nil
}

func (h *ArticleHandler) UpdateCompleted(ctx context.Context, req *UpdateCompletedRequest) (*ArticleResponse, error) {
	ref, err := articleRef(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.UpdateCompleted(ctx, &dto.UpdateCompletedInput{
		ArticleRef: ref,
		Floor:      req.Floor,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return nil, h.toStatus("UpdateCompleted", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) Transfer(ctx context.Context, req *TransferRequest) (*ArticleResponse, error) {
	ref, err := articleRef(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.Transfer(ctx, &dto.TransferInput{
		ArticleRef: ref,
		FromFloor:  req.FromFloor,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return nil, h.toStatus("Transfer", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) RecordGrading(ctx context.Context, req *RecordGradingRequest) (*ArticleResponse, error) {
	ref, err := articleRef(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.RecordGrading(ctx, &dto.RecordGradingInput{
		ArticleRef:        ref,
		Floor:             req.Floor,
		M1:                req.M1,
		M2:                req.M2,
		M3:                req.M3,
		M4:                req.M4,
		InspectedQuantity: req.InspectedQuantity,
		RepairStatus:      req.RepairStatus,
		RepairRemarks:     req.RepairRemarks,
	})
	if err != nil {
		return nil, h.toStatus("RecordGrading", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) ShiftM2(ctx context.Context, req *ShiftM2Request) (*ArticleResponse, error) {
	ref, err := articleRef(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.ShiftM2(ctx, &dto.ShiftM2Input{
		ArticleRef: ref,
		Floor:      req.Floor,
		FromM2:     req.FromM2,
		ToM1:       req.ToM1,
		ToM3:       req.ToM3,
		ToM4:       req.ToM4,
	})
	if err != nil {
		return nil, h.toStatus("ShiftM2", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) ConfirmFinalQuality(ctx context.Context, req *ConfirmFinalQualityRequest) (*ArticleResponse, error) {
	ref, err := articleRef(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.ConfirmFinalQuality(ctx, &dto.ConfirmFinalQualityInput{
		ArticleRef: ref,
		Confirmed:  req.Confirmed,
		Remarks:    req.Remarks,
	})
	if err != nil {
		return nil, h.toStatus("ConfirmFinalQuality", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) RepairTransfer(ctx context.Context, req *RepairTransferRequest) (*ArticleResponse, error) {
	ref, err := articleRef(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.RepairTransfer(ctx, &dto.RepairTransferInput{
		ArticleRef:  ref,
		FromFloor:   req.FromFloor,
		Quantity:    req.Quantity,
		TargetFloor: req.TargetFloor,
	})
	if err != nil {
		return nil, h.toStatus("RepairTransfer", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) RunConsistencyRepair(ctx context.Context, req *ArticleRequest) (*ArticleResponse, error) {
	ref, err := articleRef(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	res, err := h.uc.RunConsistencyRepair(ctx, &ref)
	if err != nil {
		return nil, h.toStatus("RunConsistencyRepair", err)
	}
	return mapResult(res), nil
}

func (h *ArticleHandler) ListAuditTrail(ctx context.Context, req *ListAuditTrailRequest) (*AuditTrailResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}
	items, total, err := h.uc.ListAuditTrail(ctx, &auditdto.AuditFilters{
		MerchantID: merchantID,
		ArticleID:  req.ArticleID,
		Floor:      req.Floor,
		Action:     req.Action,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, h.toStatus("ListAuditTrail", err)
	}
	return &AuditTrailResponse{Items: items, Total: total}, nil
}

// toStatus maps use case errors onto gRPC codes. Unexpected errors are
// logged and hidden behind a generic message.
func (h *ArticleHandler) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, production.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, article.ErrArticleNotFound), errors.Is(err, production.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, production.ErrState):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, article.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, article.ErrBusy):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	h.logger.Error("article request failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func requireMerchant(ctx context.Context) (string, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return "", status.Error(codes.Unauthenticated, "missing "+auth.MerchantHeader)
	}
	return merchantID, nil
}

func articleRef(ctx context.Context, articleID string) (dto.ArticleRef, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return dto.ArticleRef{}, err
	}
	return dto.ArticleRef{
		MerchantID: merchantID,
		ArticleID:  articleID,
		UserID:     auth.GetUserID(ctx),
	}, nil
}
