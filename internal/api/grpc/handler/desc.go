package handler

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "contractvault.v1.Contracts"

const (
	FullMethodAnalyzeContract = "/" + ServiceName + "/AnalyzeContract"
	FullMethodGetContract     = "/" + ServiceName + "/GetContract"
	FullMethodListContracts   = "/" + ServiceName + "/ListContracts"
	FullMethodGetStats        = "/" + ServiceName + "/GetStats"
	FullMethodArchiveContract = "/" + ServiceName + "/ArchiveContract"
	FullMethodDeleteContract  = "/" + ServiceName + "/DeleteContract"
)

// ContractsServer is the server API of the contracts service.
type ContractsServer interface {
	AnalyzeContract(context.Context, *AnalyzeContractRequest) (*AnalyzeContractResponse, error)
	GetContract(context.Context, *GetContractRequest) (*GetContractResponse, error)
	ListContracts(context.Context, *ListContractsRequest) (*ListContractsResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error)
	ArchiveContract(context.Context, *ArchiveContractRequest) (*Empty, error)
	DeleteContract(context.Context, *DeleteContractRequest) (*Empty, error)
}

// ContractsServiceDesc describes the service for grpc.Server.RegisterService.
// Messages are plain structs carried by the JSON codec.
var ContractsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ContractsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("AnalyzeContract", FullMethodAnalyzeContract, ContractsServer.AnalyzeContract),
		unary("GetContract", FullMethodGetContract, ContractsServer.GetContract),
		unary("ListContracts", FullMethodListContracts, ContractsServer.ListContracts),
		unary("GetStats", FullMethodGetStats, ContractsServer.GetStats),
		unary("ArchiveContract", FullMethodArchiveContract, ContractsServer.ArchiveContract),
		unary("DeleteContract", FullMethodDeleteContract, ContractsServer.DeleteContract),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "contractvault/v1/contracts",
}

// RegisterContractsServer registers srv on s.
func RegisterContractsServer(s grpc.ServiceRegistrar, srv ContractsServer) {
	s.RegisterService(&ContractsServiceDesc, srv)
}

func unary[Req, Resp any](name, fullMethod string, call func(ContractsServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ContractsServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ContractsServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
