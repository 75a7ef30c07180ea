package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-production-service/internal/auth"
	"github.com/fekuna/omnipos-production-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestContextInterceptor(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	interceptor := ContextInterceptor(logger.FromZap(zap.New(core)))
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		auth.MerchantHeader, "m-9",
	))

	var seen auth.UserContext
	_, err := interceptor(ctx, nil, info, func(ctx context.Context, _ interface{}) (interface{}, error) {
		seen = auth.UserContext{MerchantID: auth.GetMerchantID(ctx), UserID: auth.GetUserID(ctx)}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, auth.UserContext{MerchantID: "m-9", UserID: "unknown"}, seen)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "grpc call", logs.All()[0].Message)

	_, err = interceptor(ctx, nil, info, func(context.Context, interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "gone")
	})
	require.Error(t, err)
	failed := logs.FilterMessage("grpc call failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "NotFound", failed[0].ContextMap()["code"])

	_, err = interceptor(ctx, nil, info, func(context.Context, interface{}) (interface{}, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
}
