package handler

import (
	"time"

	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	"github.com/fekuna/omnipos-production-service/internal/model"
	"github.com/fekuna/omnipos-production-service/internal/production"
)

type CreateArticleRequest struct {
	ArticleNumber   string `json:"article_number"`
	OrderID         string `json:"order_id"`
	PlannedQuantity int    `json:"planned_quantity"`
	LinkingType     string `json:"linking_type"`
	Priority        string `json:"priority"`
}

type ArticleRequest struct {
	ArticleID string `json:"article_id"`
}

type ListArticlesRequest struct {
	OrderID       string `json:"order_id"`
	ArticleNumber string `json:"article_number"`
	Status        string `json:"status"`
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
}

type UpdateCompletedRequest struct {
	ArticleID string `json:"article_id"`
	Floor     string `json:"floor"`
	Quantity  int    `json:"quantity"`
}

type TransferRequest struct {
	ArticleID string `json:"article_id"`
	FromFloor string `json:"from_floor"`
	Quantity  *int   `json:"quantity,omitempty"`
}

type RecordGradingRequest struct {
	ArticleID         string  `json:"article_id"`
	Floor             string  `json:"floor"`
	M1                int     `json:"m1"`
	M2                int     `json:"m2"`
	M3                int     `json:"m3"`
	M4                int     `json:"m4"`
	InspectedQuantity *int    `json:"inspected_quantity,omitempty"`
	RepairStatus      *string `json:"repair_status,omitempty"`
	RepairRemarks     *string `json:"repair_remarks,omitempty"`
}

type ShiftM2Request struct {
	ArticleID string `json:"article_id"`
	Floor     string `json:"floor"`
	FromM2    int    `json:"from_m2"`
	ToM1      int    `json:"to_m1"`
	ToM3      int    `json:"to_m3"`
	ToM4      int    `json:"to_m4"`
}

type ConfirmFinalQualityRequest struct {
	ArticleID string `json:"article_id"`
	Confirmed bool   `json:"confirmed"`
	Remarks   string `json:"remarks"`
}

type RepairTransferRequest struct {
	ArticleID   string `json:"article_id"`
	FromFloor   string `json:"from_floor"`
	Quantity    *int   `json:"quantity,omitempty"`
	TargetFloor string `json:"target_floor,omitempty"`
}

type ListAuditTrailRequest struct {
	ArticleID string `json:"article_id"`
	Floor     string `json:"floor"`
	Action    string `json:"action"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

type FloorStatusMessage struct {
	Floor          string  `json:"floor"`
	Grading        bool    `json:"grading"`
	Received       int     `json:"received"`
	Completed      int     `json:"completed"`
	Transferred    int     `json:"transferred"`
	Remaining      int     `json:"remaining"`
	RepairReceived int     `json:"repair_received"`
	CompletionRate float64 `json:"completion_rate"`

	M1Quantity    int    `json:"m1_quantity,omitempty"`
	M2Quantity    int    `json:"m2_quantity,omitempty"`
	M3Quantity    int    `json:"m3_quantity,omitempty"`
	M4Quantity    int    `json:"m4_quantity,omitempty"`
	M1Transferred int    `json:"m1_transferred,omitempty"`
	M1Remaining   int    `json:"m1_remaining,omitempty"`
	M2Transferred int    `json:"m2_transferred,omitempty"`
	M2Remaining   int    `json:"m2_remaining,omitempty"`
	RepairStatus  string `json:"repair_status,omitempty"`
	RepairRemarks string `json:"repair_remarks,omitempty"`
}

type ArticleMessage struct {
	ID                    string               `json:"id"`
	ArticleNumber         string               `json:"article_number"`
	OrderID               string               `json:"order_id"`
	PlannedQuantity       int                  `json:"planned_quantity"`
	LinkingType           string               `json:"linking_type"`
	Priority              string               `json:"priority"`
	Status                string               `json:"status"`
	Progress              int                  `json:"progress"`
	Flow                  []string             `json:"flow"`
	FlowSource            string               `json:"flow_source"`
	Floors                []FloorStatusMessage `json:"floors"`
	FinalQualityConfirmed bool                 `json:"final_quality_confirmed"`
	FinalQualityRemarks   string               `json:"final_quality_remarks,omitempty"`
	Version               int                  `json:"version"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type ArticleResponse struct {
	Article     *ArticleMessage `json:"article"`
	Warnings    []string        `json:"warnings,omitempty"`
	Corrections []string        `json:"corrections,omitempty"`
	// AuditFailures counts audit entries a sink rejected.
	AuditFailures int `json:"audit_failures,omitempty"`
}

type ListArticlesResponse struct {
	Items []*ArticleMessage `json:"items"`
	Total int               `json:"total"`
}

type FloorStatusResponse struct {
	ArticleID string               `json:"article_id"`
	Floors    []FloorStatusMessage `json:"floors"`
}

type ProgressResponse struct {
	ArticleID string `json:"article_id"`
	Progress  int    `json:"progress"`
}

type AuditTrailResponse struct {
	Items []model.AuditLog `json:"items"`
	Total int              `json:"total"`
}

func mapFloorStatuses(in []production.FloorStatus) []FloorStatusMessage {
	out := make([]FloorStatusMessage, len(in))
	for i, s := range in {
		out[i] = FloorStatusMessage{
			Floor:          s.Floor.String(),
			Grading:        s.Grading,
			Received:       s.Received,
			Completed:      s.Completed,
			Transferred:    s.Transferred,
			Remaining:      s.Remaining,
			RepairReceived: s.RepairReceived,
			CompletionRate: s.CompletionRate,
			M1Quantity:     s.M1Quantity,
			M2Quantity:     s.M2Quantity,
			M3Quantity:     s.M3Quantity,
			M4Quantity:     s.M4Quantity,
			M1Transferred:  s.M1Transferred,
			M1Remaining:    s.M1Remaining,
			M2Transferred:  s.M2Transferred,
			M2Remaining:    s.M2Remaining,
			RepairStatus:   string(s.RepairStatus),
			RepairRemarks:  s.RepairRemarks,
		}
	}
	return out
}

func mapArticle(a *production.Article) *ArticleMessage {
	return &ArticleMessage{
		ID:                    a.ID,
		ArticleNumber:         a.ArticleNumber,
		OrderID:               a.OrderID,
		PlannedQuantity:       a.PlannedQuantity,
		LinkingType:           a.LinkingType.String(),
		Priority:              string(a.Priority),
		Status:                string(a.Status),
		Progress:              a.Progress,
		Flow:                  a.Flow.Names(),
		FlowSource:            string(a.Flow.Source),
		Floors:                mapFloorStatuses(a.FloorStatuses()),
		FinalQualityConfirmed: a.FinalQualityConfirmed,
		FinalQualityRemarks:   a.FinalQualityRemarks,
		Version:               a.Version,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

func mapResult(res *dto.Result) *ArticleResponse {
	resp := &ArticleResponse{
		Article:       mapArticle(res.Article),
		Warnings:      res.Warnings,
		AuditFailures: len(res.Audit.Failures),
	}
	for _, c := range res.Corrections {
		resp.Corrections = append(resp.Corrections, c.String())
	}
	return resp
}
