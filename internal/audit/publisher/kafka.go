package publisher

import (
	"context"
	"encoding/json"

	"github.com/fekuna/omnipos-production-service/internal/model"
)

// Producer is satisfied by *broker.KafkaProducer.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type AuditEvent struct {
	EventType string          `json:"event_type"`
	Payload   *model.AuditLog `json:"payload"`
}

// KafkaSink publishes audit entries keyed by article so downstream consumers
// see each article's history in order.
type KafkaSink struct {
	producer Producer
}

func NewKafkaSink(p Producer) *KafkaSink {
	return &KafkaSink{producer: p}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Append(ctx context.Context, e *model.AuditLog) error {
	data, err := json.Marshal(AuditEvent{EventType: "ProductionAuditLogged", Payload: e})
	if err != nil {
		return err
	}
	return s.producer.Publish(ctx, e.ArticleID, data)
}
