package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/ftracker/internal/api"
	"example.com/ftracker/internal/auth"
	"example.com/ftracker/internal/config"
	"example.com/ftracker/internal/domain"
	persistence "example.com/ftracker/internal/persistence/postgres"
	"example.com/ftracker/internal/publisher"
	"example.com/ftracker/internal/tracker"
	httptransport "example.com/ftracker/internal/transport/http"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []tracker.Option{tracker.WithConcurrency(cfg.BatchConcurrency)}

	var repo domain.SummaryRepository
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		pgRepo := persistence.NewRepository(pool)
		repo = pgRepo
		opts = append(opts, tracker.WithSinks(pgRepo))
	}

	if cfg.SummaryTopic != "" {
		producer := publisher.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()
		opts = append(opts, tracker.WithSinks(publisher.NewSummaryPublisher(producer, cfg.SummaryTopic)))
	}

	handler := api.NewHandler(tracker.NewService(opts...), repo)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	authMiddleware := auth.NewMiddleware(
		auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer},
		auth.PublicPaths("/healthz", "/metrics", "/v1/workouts/codes"),
	)

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress), authMiddleware.Wrap(logger(mux)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("ftracker api listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
