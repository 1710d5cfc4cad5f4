package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jurisai/contractvault/internal/analyzer"
	grpcctx "github.com/jurisai/contractvault/internal/api/grpc/context"
	"github.com/jurisai/contractvault/internal/api/grpc/router"
	grpcServer "github.com/jurisai/contractvault/internal/api/grpc/server"
	"github.com/jurisai/contractvault/internal/config"
	"github.com/jurisai/contractvault/internal/logger"
	"github.com/jurisai/contractvault/internal/model"
	"github.com/jurisai/contractvault/internal/repository/memory"
	"github.com/jurisai/contractvault/internal/repository/postgres"
	"github.com/jurisai/contractvault/internal/server"
	"github.com/jurisai/contractvault/internal/service"
	storage "github.com/jurisai/contractvault/internal/storage/minio"
	"github.com/jurisai/contractvault/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	store, closeStore, err := newStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize record store", "driver", cfg.Database.Driver, "error", err)
	}
	defer closeStore()

	staging, err := newStaging(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize staging storage", "error", err)
	}
	if staging == nil {
		logger.Warn("upload staging disabled")
	}

	contractService := service.NewContracts(store, staging, newAnalyzer(cfg.Analyzer), cfg.Analyzer.Version, logger)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	ctxMgr := grpcctx.NewManager()

	r := router.New(contractService, tokenManager, ctxMgr, logger)
	grpcServer := grpcServer.NewGRPCServer(r.Register(cfg.GRPC.MaxRecvBytes()), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "tls", cfg.GRPC.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	r.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newStore(ctx context.Context, cfg config.Database) (model.ContractStore, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewContractStore(), func() {}, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewContractRepository(conn.DB), func() { _ = conn.Close() }, nil
	}
}

// newStaging returns a nil Storage when staging is disabled.
func newStaging(ctx context.Context, cfg config.Storage) (model.Storage, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	client, err := storage.NewClient(ctx, minioClient, cfg.Bucket, cfg.Prefix)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newAnalyzer(cfg config.Analyzer) model.Analyzer {
	var next model.Analyzer = analyzer.NewRules()
	if cfg.URL != "" {
		next = analyzer.NewRemote(cfg.URL, &http.Client{})
	}
	return analyzer.WithTimeout(next, cfg.Timeout)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
