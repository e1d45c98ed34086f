package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName = "blockdrop.Leaderboard"

	submitMethod = "/" + serviceName + "/Submit"
	topMethod    = "/" + serviceName + "/Top"
)

// LeaderboardServer is the server API for the Leaderboard service. Requests and
// responses are structpb.Struct values:
//
//	Submit {name, score}  -> {id, rank, best}
//	Top    {limit}        -> {entries: [{id, name, score, at}]}
type LeaderboardServer interface {
	Submit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Top(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterLeaderboardServer registers srv with s.
func RegisterLeaderboardServer(s grpc.ServiceRegistrar, srv LeaderboardServer) {
	s.RegisterService(&leaderboardServiceDesc, srv)
}

var leaderboardServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LeaderboardServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: submitHandler},
		{MethodName: "Top", Handler: topHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func submitHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LeaderboardServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: submitMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LeaderboardServer).Submit(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func topHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LeaderboardServer).Top(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: topMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LeaderboardServer).Top(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
