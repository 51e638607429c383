package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vogiaan1904/branchqueue/config"
	"github.com/vogiaan1904/branchqueue/internal/announce"
	grpcSvc "github.com/vogiaan1904/branchqueue/internal/delivery/grpc"
	"github.com/vogiaan1904/branchqueue/internal/delivery/grpc/queuerpc"
	httpDelivery "github.com/vogiaan1904/branchqueue/internal/delivery/http"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka/consumer"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/branchqueue/internal/display"
	"github.com/vogiaan1904/branchqueue/internal/infra/redis"
	"github.com/vogiaan1904/branchqueue/internal/metrics"
	"github.com/vogiaan1904/branchqueue/internal/playlist"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	repo "github.com/vogiaan1904/branchqueue/internal/repository/redis"
	"github.com/vogiaan1904/branchqueue/internal/service"
	"github.com/vogiaan1904/branchqueue/pkg/clock"
	pkgKafka "github.com/vogiaan1904/branchqueue/pkg/kafka"
	pkgLog "github.com/vogiaan1904/branchqueue/pkg/logger"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})
	ctx = pkgLog.WithFields(ctx, l, "branch_id", cfg.Branch.ID)

	seed, err := config.LoadSeed(cfg.Branch.SeedFile)
	if err != nil {
		l.Fatalf(ctx, "Failed to load seed: %v", err)
	}

	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	clk := clock.Real()

	// Queue engine
	engine := queue.NewEngine(l, queue.WithClock(clk), queue.WithMetrics(m))
	if err := seedEngine(ctx, engine, seed); err != nil {
		l.Fatalf(ctx, "Failed to seed branch: %v", err)
	}

	// Optional Redis mirror
	var stateRepo repo.StateRepository
	if cfg.Redis.Enabled {
		redisCli, err := redis.Connect(ctx, cfg.Redis, l)
		if err != nil {
			l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
		}
		defer redis.Disconnect(context.WithoutCancel(ctx), redisCli, l)
		stateRepo = repo.NewRedisStateRepository(redisCli, cfg.Branch.ID, l)
	}

	// Optional Kafka producer
	var prod producer.Producer
	if cfg.Kafka.Enabled {
		kSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
			ClientID:     "branchqueue-" + cfg.Branch.ID,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
		}
		prod = producer.NewProducer(kSyncProd, l)
		defer func() {
			if err := prod.Close(); err != nil {
				l.Warnf(ctx, "Failed to close Kafka producer: %v", err)
			}
		}()
	}

	// Services
	qSvc := service.NewQueueService(engine, l)
	var relay service.EventRelay
	if prod != nil || stateRepo != nil {
		relay = service.NewEventRelay(engine, prod, stateRepo, m, l, service.RelayConfig{
			BranchID:        cfg.Branch.ID,
			Buffer:          cfg.Relay.Buffer,
			RetryAttempts:   cfg.Relay.RetryAttempts,
			RetryDelay:      cfg.Relay.RetryDelay,
			ShutdownTimeout: cfg.Relay.ShutdownTimeout,
			BoardTTL:        cfg.Redis.BoardTTL,
		})
		if err := relay.Start(ctx); err != nil {
			l.Fatalf(ctx, "Failed to start event relay: %v", err)
		}
		defer func() {
			if err := relay.Stop(); err != nil {
				l.Warnf(ctx, "Failed to stop event relay: %v", err)
			}
		}()
	}

	// Optional Kafka command consumer
	if cfg.Kafka.ConsumerEnabled {
		kConsGr, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
			Brokers:  cfg.Kafka.Brokers,
			GroupID:  cfg.Kafka.ConsumerGroupID,
			ClientID: "branchqueue-" + cfg.Branch.ID,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka consumer: %v", err)
		}
		cons := consumer.NewConsumer(kConsGr, qSvc, l)
		if err := cons.Start(ctx); err != nil {
			l.Fatalf(ctx, "Failed to start Kafka consumer: %v", err)
		}
		defer func() {
			if err := cons.Close(); err != nil {
				l.Warnf(ctx, "Failed to close Kafka consumer: %v", err)
			}
		}()
	}

	// Display surface, announcer, playlist
	hub := display.NewHub(l, clk)
	dispatcher := announce.NewDispatcher(engine, newSpeaker(cfg.Announcer, l), announce.Config{
		Locale:        cfg.Announcer.Locale,
		FlashDuration: cfg.Announcer.FlashDuration,
		RecallWindow:  cfg.Announcer.RecallWindow,
		SpeechTimeout: cfg.Announcer.SpeechTimeout,
	}, l,
		announce.WithClock(clk),
		announce.WithMetrics(m),
		announce.WithNotifier(hub),
	)
	player := playlist.NewScheduler(hub, l, playlist.WithClock(clk), playlist.WithMetrics(m))

	// HTTP server
	h := httpDelivery.NewHTTPHandler(qSvc, relay, l)
	httpSrv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpDelivery.NewRouter(h, httpDelivery.RouterConfig{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Display: display.NewHandler(hub, display.ClientConfig{
				WriteWait:  cfg.Display.WriteWait,
				PongWait:   cfg.Display.PongWait,
				PingPeriod: cfg.Display.PingPeriod,
				SendBuffer: cfg.Display.SendBuffer,
			}, cfg.Server.AllowedOrigins, l),
			Metrics: metrics.Handler(reg),
		}, l),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// gRPC server
	lnr, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRpcPort))
	if err != nil {
		l.Fatalf(ctx, "gRPC server failed to listen: %v", err)
	}
	gRpcSrv := grpc.NewServer()
	queuerpc.RegisterQueueServiceServer(gRpcSrv, grpcSvc.NewGrpcService(qSvc, l))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error { return hub.Run(gCtx) })
	g.Go(func() error { return display.RunBoard(gCtx, hub, engine) })
	g.Go(func() error { return dispatcher.Run(gCtx) })
	g.Go(func() error { return player.Run(gCtx, engine) })

	g.Go(func() error {
		l.Infof(ctx, "HTTP server is listening on port: %d", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		l.Infof(ctx, "gRPC server is listening on port: %d", cfg.Server.GRpcPort)
		if err := gRpcSrv.Serve(lnr); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		l.Info(ctx, "Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			l.Warnf(ctx, "HTTP shutdown: %v", err)
		}
		gRpcSrv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		l.Errorf(ctx, "Server stopped with error: %v", err)
	}
	dispatcher.Wait()

	l.Info(ctx, "Server exited")
}

func seedEngine(ctx context.Context, e *queue.Engine, seed *config.Seed) error {
	for _, d := range seed.DepartmentModels() {
		if _, err := e.AddDepartment(ctx, d); err != nil {
			return fmt.Errorf("department %q: %w", d.ID, err)
		}
	}
	for _, m := range seed.MediaModels() {
		if _, err := e.AddMedia(ctx, m); err != nil {
			return fmt.Errorf("media %q: %w", m.ID, err)
		}
	}
	return nil
}

func newSpeaker(cfg config.AnnouncerConfig, l pkgLog.Logger) announce.Speaker {
	if cfg.Command == "" {
		return announce.NewLogSpeaker(l)
	}
	return announce.NewCommandSpeaker(cfg.Command, cfg.Rate)
}
