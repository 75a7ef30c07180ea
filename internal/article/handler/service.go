package handler

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "omnipos.production.v1.ArticleService"

type ArticleServiceServer interface {
	CreateArticle(context.Context, *CreateArticleRequest) (*ArticleResponse, error)
	GetArticle(context.Context, *ArticleRequest) (*ArticleResponse, error)
	ListArticles(context.Context, *ListArticlesRequest) (*ListArticlesResponse, error)
	GetFloorStatus(context.Context, *ArticleRequest) (*FloorStatusResponse, error)
	GetProgress(context.Context, *ArticleRequest) (*ProgressResponse, error)
	UpdateCompleted(context.Context, *UpdateCompletedRequest) (*ArticleResponse, error)
	Transfer(context.Context, *TransferRequest) (*ArticleResponse, error)
	RecordGrading(context.Context, *RecordGradingRequest) (*ArticleResponse, error)
	ShiftM2(context.Context, *ShiftM2Request) (*ArticleResponse, error)
	ConfirmFinalQuality(context.Context, *ConfirmFinalQualityRequest) (*ArticleResponse, error)
	RepairTransfer(context.Context, *RepairTransferRequest) (*ArticleResponse, error)
	RunConsistencyRepair(context.Context, *ArticleRequest) (*ArticleResponse, error)
	ListAuditTrail(context.Context, *ListAuditTrailRequest) (*AuditTrailResponse, error)
}

// unary adapts a typed server method to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(ArticleServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ArticleServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ArticleServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ArticleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ArticleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateArticle", ArticleServiceServer.CreateArticle),
		unary("GetArticle", ArticleServiceServer.GetArticle),
		unary("ListArticles", ArticleServiceServer.ListArticles),
		unary("GetFloorStatus", ArticleServiceServer.GetFloorStatus),
		unary("GetProgress", ArticleServiceServer.GetProgress),
		unary("UpdateCompleted", ArticleServiceServer.UpdateCompleted),
		unary("Transfer", ArticleServiceServer.Transfer),
		unary("RecordGrading", ArticleServiceServer.RecordGrading),
		unary("ShiftM2", ArticleServiceServer.ShiftM2),
		unary("ConfirmFinalQuality", ArticleServiceServer.ConfirmFinalQuality),
		unary("RepairTransfer", ArticleServiceServer.RepairTransfer),
		unary("RunConsistencyRepair", ArticleServiceServer.RunConsistencyRepair),
		unary("ListAuditTrail", ArticleServiceServer.ListAuditTrail),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "article_service",
}

func RegisterArticleServiceServer(s grpc.ServiceRegistrar, srv ArticleServiceServer) {
	s.RegisterService(&ArticleServiceDesc, srv)
}

// Invoke calls method on the article service using the JSON codec.
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, method string, req, resp interface{}, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, resp, opts...)
}
