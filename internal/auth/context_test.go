package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestIdentityFromContext(t *testing.T) {
	ctx := WithUser(context.Background(), UserContext{MerchantID: "m-1", UserID: "u-1"})
	assert.Equal(t, "m-1", GetMerchantID(ctx))
	assert.Equal(t, "u-1", GetUserID(ctx))
}

func TestIdentityFromMetadata(t *testing.T) {
	md := metadata.Pairs(MerchantHeader, "m-2", UserHeader, "u-2")
	ctx := metadata.NewIncomingContext(context.Background(), md)
	assert.Equal(t, "m-2", GetMerchantID(ctx))
	assert.Equal(t, "u-2", GetUserID(ctx))

	assert.Empty(t, GetUserID(context.Background()))
}
