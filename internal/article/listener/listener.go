package listener

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/fekuna/omnipos-production-service/internal/article"
	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	"github.com/fekuna/omnipos-production-service/internal/production"
	"github.com/fekuna/omnipos-production-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of the Kafka consumer the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type OrderListener struct {
	consumer MessageReader
	uc       article.UseCase
	logger   logger.ZapLogger
}

func NewOrderListener(consumer MessageReader, uc article.UseCase, logger logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting Order Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Order Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID         string             `json:"id"`
	MerchantID string             `json:"merchant_id"`
	CreatedBy  string             `json:"created_by"`
	Items      []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID     string  `json:"product_id"`
	ArticleNumber string  `json:"article_number"`
	Quantity      float64 `json:"quantity"`
	LinkingType   string  `json:"linking_type"`
	Priority      string  `json:"priority"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	userID := event.Payload.CreatedBy
	if userID == "" {
		userID = "system"
	}

	for _, item := range event.Payload.Items {
		// Lines without an article number are not produced in-house.
		if item.ArticleNumber == "" {
			continue
		}
		// Garments are counted in whole pieces.
		if item.Quantity != math.Trunc(item.Quantity) {
			l.logger.Warn("Skipping order item with fractional quantity",
				zap.String("order_id", event.Payload.ID),
				zap.String("article_number", item.ArticleNumber),
				zap.Float64("quantity", item.Quantity),
			)
			continue
		}
		input := &dto.CreateArticleInput{
			MerchantID:      event.Payload.MerchantID,
			ArticleNumber:   item.ArticleNumber,
			OrderID:         event.Payload.ID,
			PlannedQuantity: int(item.Quantity),
			LinkingType:     item.LinkingType,
			Priority:        item.Priority,
			UserID:          userID,
		}

		res, err := l.uc.CreateArticle(ctx, input)
		if err != nil {
			level := l.logger.Error
			if errors.Is(err, production.ErrValidation) {
				// Redelivery cannot fix a malformed line.
				level = l.logger.Warn
			}
			level("Failed to create article for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("article_number", item.ArticleNumber),
				zap.Error(err),
			)
			continue
		}
		if len(res.Warnings) > 0 {
			l.logger.Info("Order item already in production",
				zap.String("order_id", event.Payload.ID),
				zap.String("article_id", res.Article.ID))
		}
	}
}
