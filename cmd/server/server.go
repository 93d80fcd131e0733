package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/arychagov/w40k/internal/config"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/handlers/live"
	simulatorv1 "github.com/arychagov/w40k/internal/handlers/simulator/v1"
	"github.com/arychagov/w40k/internal/orchestrators/simulation"
	"github.com/arychagov/w40k/internal/pkg/clock"
	"github.com/arychagov/w40k/internal/pkg/idgen"
	"github.com/arychagov/w40k/internal/publishers"
	"github.com/arychagov/w40k/internal/redis"
	"github.com/arychagov/w40k/internal/repositories/summaries"
)

const shutdownTimeout = 30 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and live editing servers",
	Long: `Start the simulator gRPC service together with the HTTP server that hosts
live websocket editing sessions.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().Int("port", 50051, "gRPC server port")
	serverCmd.Flags().String("http-addr", ":8080", "HTTP listen address")
	serverCmd.Flags().String("redis-addr", "", "Redis address for summary broadcast (disabled when empty)")
	serverCmd.Flags().Int("trials", 10000, "trials per batch")
	serverCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
}

// loadConfig reads the config file and environment, then applies any flags
// the user set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidConfiguration, "failed to read config file")
		}
	}

	bindings := map[string]string{
		"port":       "server.grpc_port",
		"http-addr":  "server.http_addr",
		"redis-addr": "redis.addr",
		"trials":     "simulation.trials",
		"log-level":  "logging.level",
	}
	for flag, key := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, errors.Wrapf(err, "failed to bind flag %s", flag)
		}
	}

	return config.FromViper(v)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service, err := simulation.NewOrchestrator(&simulation.Config{
		IDGenerator: idgen.NewUUID("batch"),
		Clock:       clock.New(),
		Trials:      cfg.Simulation.Trials,
	})
	if err != nil {
		return fmt.Errorf("failed to create simulation service: %w", err)
	}

	repo, publisher, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	logger := grpc_logging.LoggerFunc(logFunc)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	simulatorHandler, err := simulatorv1.NewHandler(&simulatorv1.HandlerConfig{
		SimulationService: service,
		SummaryRepository: repo,
		Ordering:          cfg.Simulation.Ordering(),
	})
	if err != nil {
		return fmt.Errorf("failed to create simulator handler: %w", err)
	}
	simulatorv1.RegisterSimulatorServiceServer(srv, simulatorHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(simulatorv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	liveHandler, err := live.NewHandler(&live.HandlerConfig{
		SimulationService: service,
		Publisher:         publisher,
		Ordering:          cfg.Simulation.Ordering(),
		Trials:            cfg.Simulation.Trials,
	})
	if err != nil {
		return fmt.Errorf("failed to create live handler: %w", err)
	}
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           liveHandler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Server.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve gRPC: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP server starting", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case err := <-errChan:
		srv.Stop()
		_ = httpServer.Close()
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	healthServer.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}

	return nil
}

// buildStorage picks where summaries are kept and where live summaries are
// published. Without Redis, summaries stay in memory and are only logged.
func buildStorage(
	ctx context.Context,
	cfg *config.Config,
) (summaries.Repository, publishers.Publisher, func(), error) {
	logPublisher := publishers.NewLog(slog.Default())
	if !cfg.Redis.Enabled() {
		repo := summaries.NewInMemory(clock.New())
		store, err := publishers.NewStore(repo, 0)
		if err != nil {
			return nil, nil, nil, err
		}
		return repo, publishers.Multi{logPublisher, store}, func() {}, nil
	}

	client, err := redis.NewClient(cfg.Redis.Addr, &redis.Options{
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redis.Ping(pingCtx, client); err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	repo, err := summaries.NewRedisRepository(&summaries.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	store, err := publishers.NewStore(repo, 0)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	broadcast, err := publishers.NewRedis(&publishers.RedisConfig{
		Client:  client,
		Channel: cfg.Redis.Channel,
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	slog.Info("Storing and broadcasting summaries", "redis", cfg.Redis.Addr, "channel", cfg.Redis.Channel)
	return repo, publishers.Multi{logPublisher, store, broadcast}, cleanup, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
