// Command server runs the bootcamp directory API.
//
//	@title						DevCamper API
//	@version					1.0
//	@description				Bootcamp directory with users, bootcamps, courses and reviews.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/devcamper/bootcamp-directory/docs"
	"github.com/devcamper/bootcamp-directory/internal/api"
	"github.com/devcamper/bootcamp-directory/internal/api/handler"
	"github.com/devcamper/bootcamp-directory/internal/core/service"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/config"
	mongodb "github.com/devcamper/bootcamp-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/devcamper/bootcamp-directory/internal/infrastructure/db/redis"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/notify"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/queue"
	"github.com/devcamper/bootcamp-directory/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	// 1. Configuration. A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "devcamper",
	})

	// 2. Storage
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer disconnect(log, "mongo", func(ctx context.Context) error { return mongoClient.Disconnect(ctx) })

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer disconnect(log, "redis", func(context.Context) error { return rdb.Close() })

	users := mongodb.NewUserRepository(db)
	bootcamps := mongodb.NewBootcampRepository(db)
	courses := mongodb.NewCourseRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, bootcamps, courses, reviews); err != nil {
		return err
	}
	tokens := redisdb.NewTokenStore(rdb)
	log.Info().Str("mongo_db", cfg.Mongo.Database).Str("redis", cfg.Redis.Addr).Msg("storage ready")

	// 3. Notice dispatcher
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notify.NewLogNotifier(logger.Component("notifier")), logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	// 4. Services and handlers
	authService := service.NewAuthService(users, tokens, tokens, dispatcher, service.AuthOptions{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.JWTExpire,
		ResetTokenTTL: cfg.Auth.ResetTokenTTL,
		PublicURL:     cfg.PublicURL,
	}, logger.Component("auth"))
	bootcampService := service.NewBootcampService(bootcamps, courses, reviews, logger.Component("bootcamps"))
	courseService := service.NewCourseService(courses, bootcamps, logger.Component("courses"))
	reviewService := service.NewReviewService(reviews, bootcamps, logger.Component("reviews"))

	router := api.NewRouter(api.Deps{
		Handlers: api.Handlers{
			Auth: handler.NewAuthHandler(authService, handler.CookieOptions{
				TTL:    cfg.CookieTTL(),
				Secure: cfg.IsProduction(),
			}),
			Bootcamps: handler.NewBootcampHandler(bootcampService),
			Courses:   handler.NewCourseHandler(courseService),
			Reviews:   handler.NewReviewHandler(reviewService),
		},
		Verifier: authService,
		Probes: map[string]handler.Probe{
			"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger: logger.Component("http"),
	})

	// 5. HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. Graceful shutdown
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	workerCancel()
	dispatcher.Wait()
	log.Info().Msg("server and workers stopped")
	return nil
}

func disconnect(log zerolog.Logger, name string, closeFn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := closeFn(ctx); err != nil {
		log.Error().Err(err).Str("store", name).Msg("disconnect failed")
	}
}
