package grpc

// proto.go defines the gRPC server interface for loanscore/v1/scoring.proto.
// The messages travel through the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ScoringServiceName is the fully qualified gRPC service name.
const ScoringServiceName = "loanscore.v1.ScoringService"

// ScoringServiceServer is the server API for ScoringService.
type ScoringServiceServer interface {
	AssessApplication(context.Context, *AssessApplicationRequest) (*AssessApplicationResponse, error)
	ListVariants(context.Context, *ListVariantsRequest) (*ListVariantsResponse, error)
	mustEmbedUnimplementedScoringServiceServer()
}

// UnimplementedScoringServiceServer provides forward-compatible default implementations.
type UnimplementedScoringServiceServer struct{}

func (UnimplementedScoringServiceServer) AssessApplication(context.Context, *AssessApplicationRequest) (*AssessApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessApplication not implemented")
}
func (UnimplementedScoringServiceServer) ListVariants(context.Context, *ListVariantsRequest) (*ListVariantsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListVariants not implemented")
}
func (UnimplementedScoringServiceServer) mustEmbedUnimplementedScoringServiceServer() {}

// RegisterScoringServiceServer registers the ScoringServiceServer with the gRPC server.
func RegisterScoringServiceServer(s grpclib.ServiceRegistrar, srv ScoringServiceServer) {
	s.RegisterService(&_ScoringService_serviceDesc, srv)
}

var _ScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ScoringServiceName,
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessApplication", Handler: _ScoringService_AssessApplication_Handler},
		{MethodName: "ListVariants", Handler: _ScoringService_ListVariants_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "loanscore/v1/scoring.proto",
}

func _ScoringService_AssessApplication_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(AssessApplicationRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).AssessApplication(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ScoringServiceName + "/AssessApplication",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScoringServiceServer).AssessApplication(ctx, req.(*AssessApplicationRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _ScoringService_ListVariants_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(ListVariantsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).ListVariants(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ScoringServiceName + "/ListVariants",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScoringServiceServer).ListVariants(ctx, req.(*ListVariantsRequest))
	}
	return interceptor(ctx, req, info, handler)
}
