package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-production-service/internal/article"
	"github.com/fekuna/omnipos-production-service/internal/article/dto"
	"github.com/fekuna/omnipos-production-service/internal/production"
	"github.com/fekuna/omnipos-production-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// createOnly implements only CreateArticle; any other call panics.
type createOnly struct {
	article.UseCase
	mu     sync.Mutex
	inputs []*dto.CreateArticleInput
	failOn string
}

func (c *createOnly) CreateArticle(_ context.Context, in *dto.CreateArticleInput) (*dto.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs = append(c.inputs, in)
	if in.ArticleNumber == c.failOn {
		return nil, fmt.Errorf("planned quantity: %w", production.ErrValidation)
	}
	return &dto.Result{Article: &production.Article{ID: "art-" + in.ArticleNumber}}, nil
}

func (c *createOnly) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inputs)
}

const orderEvent = `{
	"event_id": "ev-1",
	"event_type": "OrderCreated",
	"payload": {
		"id": "ord-7",
		"merchant_id": "m-1",
		"items": [
			{"product_id": "p-1", "article_number": "SW-100", "quantity": 120, "linking_type": "Auto Linking", "priority": "high"},
			{"product_id": "p-2", "quantity": 3},
			{"product_id": "p-3", "article_number": "SW-200", "quantity": 0}
		]
	}
}`

func TestProcessMessage(t *testing.T) {
	uc := &createOnly{failOn: "SW-200"}
	l := NewOrderListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), []byte(orderEvent))

	require.Len(t, uc.inputs, 2)
	assert.Equal(t, &dto.CreateArticleInput{
		MerchantID:      "m-1",
		ArticleNumber:   "SW-100",
		OrderID:         "ord-7",
		PlannedQuantity: 120,
		LinkingType:     "Auto Linking",
		Priority:        "high",
		UserID:          "system",
	}, uc.inputs[0])
	assert.Equal(t, "SW-200", uc.inputs[1].ArticleNumber)
}

func TestProcessMessage_FractionalQuantity(t *testing.T) {
	uc := &createOnly{}
	core, logs := observer.New(zap.WarnLevel)
	l := NewOrderListener(nil, uc, logger.FromZap(zap.New(core)))

	l.processMessage(context.Background(), []byte(`{
		"event_type": "OrderCreated",
		"payload": {
			"id": "ord-8",
			"merchant_id": "m-1",
			"items": [
				{"article_number": "SW-100", "quantity": 12.5},
				{"article_number": "SW-300", "quantity": 40.0}
			]
		}
	}`))

	require.Len(t, uc.inputs, 1)
	assert.Equal(t, "SW-300", uc.inputs[0].ArticleNumber)
	assert.Equal(t, 40, uc.inputs[0].PlannedQuantity)

	skipped := logs.FilterMessage("Skipping order item with fractional quantity").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "SW-100", skipped[0].ContextMap()["article_number"])
}

func TestProcessMessage_Ignored(t *testing.T) {
	uc := &createOnly{}
	l := NewOrderListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), []byte(`not json`))
	l.processMessage(context.Background(), []byte(`{"event_type": "OrderCancelled", "payload": {"items": [{"article_number": "SW-1", "quantity": 1}]}}`))

	assert.Empty(t, uc.inputs)
}

type chanReader struct {
	msgs chan kafka.Message
}

func (r *chanReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func TestStart_StopsOnCancel(t *testing.T) {
	uc := &createOnly{}
	r := &chanReader{msgs: make(chan kafka.Message, 1)}
	l := NewOrderListener(r, uc, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	r.msgs <- kafka.Message{Value: []byte(orderEvent)}
	require.Eventually(t, func() bool { return uc.count() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(errors.New("listener did not stop"))
	}
}
