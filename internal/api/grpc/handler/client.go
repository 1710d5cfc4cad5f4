package handler

import (
	"context"

	"google.golang.org/grpc"

	"github.com/jurisai/contractvault/internal/api/grpc/codec"
)

// ContractsClient calls the contracts service over a client connection.
type ContractsClient struct {
	cc grpc.ClientConnInterface
}

func NewContractsClient(cc grpc.ClientConnInterface) *ContractsClient {
	return &ContractsClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ContractsClient) AnalyzeContract(ctx context.Context, in *AnalyzeContractRequest, opts ...grpc.CallOption) (*AnalyzeContractResponse, error) {
	return invoke[AnalyzeContractResponse](ctx, c.cc, FullMethodAnalyzeContract, in, opts)
}

func (c *ContractsClient) GetContract(ctx context.Context, in *GetContractRequest, opts ...grpc.CallOption) (*GetContractResponse, error) {
	return invoke[GetContractResponse](ctx, c.cc, FullMethodGetContract, in, opts)
}

func (c *ContractsClient) ListContracts(ctx context.Context, in *ListContractsRequest, opts ...grpc.CallOption) (*ListContractsResponse, error) {
	return invoke[ListContractsResponse](ctx, c.cc, FullMethodListContracts, in, opts)
}

func (c *ContractsClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error) {
	return invoke[GetStatsResponse](ctx, c.cc, FullMethodGetStats, in, opts)
}

func (c *ContractsClient) ArchiveContract(ctx context.Context, in *ArchiveContractRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, FullMethodArchiveContract, in, opts)
}

func (c *ContractsClient) DeleteContract(ctx context.Context, in *DeleteContractRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, FullMethodDeleteContract, in, opts)
}
