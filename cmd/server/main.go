package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"insurecar/internal/audit"
	"insurecar/internal/platform/config"
	"insurecar/internal/platform/httpserver"
	"insurecar/internal/platform/logger"
	"insurecar/internal/platform/metrics"
	"insurecar/internal/platform/middleware"
	"insurecar/internal/platform/redis"
	"insurecar/internal/policy/handler"
	policymetrics "insurecar/internal/policy/metrics"
	"insurecar/internal/policy/service"
	"insurecar/internal/policy/store/memory"
	"insurecar/internal/policy/store/numbers"
	"insurecar/internal/policy/store/postgres"
	"insurecar/pkg/platform/httputil"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "insurecar: %v\n", err)
		os.Exit(1)
	}
}

// run wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	stores, policyTx, db, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var registry service.NumberRegistry = numbers.NewMemoryRegistry()
	if redisClient != nil {
		defer redisClient.Close()
		registry = numbers.NewRedisRegistry(redisClient.Client, cfg.Redis.NumberTTL)
		log.Info("policy numbers reserved in redis")
	}

	sink, kafka, err := buildAuditSink(ctx, cfg, log)
	if err != nil {
		return err
	}
	if kafka != nil {
		defer kafka.Close()
	}
	auditWorker := audit.NewWorker(sink, cfg.Audit.Buffer, log)

	svc := service.New(stores,
		service.WithLogger(log),
		service.WithAuditPublisher(auditWorker),
		service.WithMetrics(policymetrics.New(reg)),
		service.WithTx(policyTx),
		service.WithNumberRegistry(registry),
	)

	var validator middleware.JWTValidator
	if cfg.AuthEnabled() {
		validator = middleware.NewHMACValidator(cfg.Auth.SigningKey, cfg.Auth.Issuer)
	} else {
		log.Warn("INSURECAR_JWT_SIGNING_KEY not set, API is unauthenticated")
	}

	router := chi.NewRouter()
	router.Get("/healthz", healthz(db, redisClient))
	handler.New(svc, log, metrics.New(reg), validator).Register(router)

	srv := httpserver.New(cfg.Addr, router)
	metricsSrv := httpserver.New(cfg.MetricsAddr, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := auditWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	for _, s := range []*http.Server{srv, metricsSrv} {
		g.Go(func() error {
			log.Info("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", s.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownIn)
		defer cancel()
		log.Info("shutting down")
		return errors.Join(srv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

// buildStores selects Postgres when a database URL is configured and in-memory
// stores otherwise.
func buildStores(ctx context.Context, cfg config.Server, log *slog.Logger) (service.Stores, service.PolicyTx, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Info("using in-memory stores")
		return service.Stores{
			Customers: memory.NewCustomerStore(),
			Vehicles:  memory.NewVehicleStore(),
			Coverages: memory.NewCoverageStore(),
			Policies:  memory.NewPolicyStore(),
			Payments:  memory.NewPaymentStore(),
		}, service.NewShardedTx(cfg.PolicyTx), nil, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return service.Stores{}, nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return service.Stores{}, nil, nil, err
	}
	log.Info("using postgres stores")
	return service.Stores{
		Customers: postgres.NewCustomerStore(db),
		Vehicles:  postgres.NewVehicleStore(db),
		Coverages: postgres.NewCoverageStore(db),
		Policies:  postgres.NewPolicyStore(db),
		Payments:  postgres.NewPaymentStore(db),
	}, newPolicyPostgresTx(db, cfg.PolicyTx), db, nil
}

// buildAuditSink always logs audit events and also publishes them to Kafka when
// brokers are configured.
func buildAuditSink(ctx context.Context, cfg config.Server, log *slog.Logger) (audit.Publisher, *kgo.Client, error) {
	logSink := audit.NewLogPublisher(log)
	if !cfg.KafkaEnabled() {
		return logSink, nil, nil
	}

	client, err := audit.NewKafkaClient(cfg.Audit.Brokers, cfg.Audit.Topic)
	if err != nil {
		return nil, nil, err
	}
	if err := audit.EnsureTopic(ctx, client, cfg.Audit.Topic, cfg.Audit.Partitions, 1); err != nil {
		client.Close()
		return nil, nil, err
	}
	log.Info("publishing audit events to kafka", "topic", cfg.Audit.Topic)
	return audit.Fanout{logSink, audit.NewKafkaPublisher(client, cfg.Audit.Topic)}, client, nil
}

func healthz(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				status["postgres"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				status["redis"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if code != http.StatusOK {
			status["status"] = "degraded"
		}
		httputil.WriteJSON(w, code, status)
	}
}
