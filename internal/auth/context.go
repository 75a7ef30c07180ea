package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

type ctxKey string

const (
	merchantIDKey ctxKey = "merchant_id"
	userIDKey     ctxKey = "user_id"
)

const (
	MerchantHeader = "x-merchant-id"
	UserHeader     = "x-user-id"
)

type UserContext struct {
	MerchantID string
	UserID     string
}

// WithUser stores the caller identity on ctx.
func WithUser(ctx context.Context, u UserContext) context.Context {
	ctx = context.WithValue(ctx, merchantIDKey, u.MerchantID)
	return context.WithValue(ctx, userIDKey, u.UserID)
}

// GetMerchantID returns the merchant set by the interceptor, falling back to
// incoming gRPC metadata.
func GetMerchantID(ctx context.Context) string {
	if val, ok := ctx.Value(merchantIDKey).(string); ok && val != "" {
		return val
	}
	return fromMetadata(ctx, MerchantHeader)
}

// GetUserID returns the acting user, used as the audit actor.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey).(string); ok && val != "" {
		return val
	}
	return fromMetadata(ctx, UserHeader)
}

func fromMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if val := md.Get(key); len(val) > 0 {
		return val[0]
	}
	return ""
}
