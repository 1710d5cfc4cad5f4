package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jurisai/contractvault/internal/api/grpc/handler"
	"github.com/jurisai/contractvault/internal/api/grpc/middleware"
	"github.com/jurisai/contractvault/internal/logger"
	"github.com/jurisai/contractvault/internal/model"
)

// Router wires handlers and interceptors into a gRPC server.
type Router struct {
	contractService handler.ContractService
	tokens          model.TokenManager
	contextManager  model.ContextManager
	logger          *logger.Logger
	health          *health.Server
}

// New creates new gRPC Router instance.
func New(
	contractService handler.ContractService,
	tokens model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		contractService: contractService,
		tokens:          tokens,
		contextManager:  contextManager,
		logger:          logger,
		health:          health.NewServer(),
	}
}

// requiresAuth leaves the health service open; everything else needs a token.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+healthpb.Health_ServiceDesc.ServiceName+"/")
}

// Register builds the gRPC server with recovery, logging and authentication
// interceptors. maxRecvBytes caps the size of a single upload message.
func (r *Router) Register(maxRecvBytes int) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)
	recoverer := middleware.NewRecovery(r.logger)
	recoveryOpt := recovery.WithRecoveryHandler(recoverer.HandlePanic)

	s := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxRecvBytes),
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	r.registerContractRoutes(s)
	r.registerHealth(s)

	return s
}

// Shutdown marks every service as not serving.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}

func (r *Router) registerContractRoutes(server *grpc.Server) {
	contractsHandler := handler.NewContracts(r.contractService, r.contextManager, r.logger)
	handler.RegisterContractsServer(server, contractsHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, r.health)
	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus(handler.ServiceName, healthpb.HealthCheckResponse_SERVING)
}
