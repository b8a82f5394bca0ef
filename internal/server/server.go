// Package server composes the application's dependencies and owns their
// lifecycle: database pool, optional redis client, optional RabbitMQ
// publisher and activity consumer, and the echo HTTP server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/leetcode-tracker/internal/config"
	"github.com/iliyamo/leetcode-tracker/internal/database"
	"github.com/iliyamo/leetcode-tracker/internal/errs"
	"github.com/iliyamo/leetcode-tracker/internal/handler"
	"github.com/iliyamo/leetcode-tracker/internal/middleware"
	"github.com/iliyamo/leetcode-tracker/internal/queue"
	"github.com/iliyamo/leetcode-tracker/internal/repository"
	"github.com/iliyamo/leetcode-tracker/internal/router"
	"github.com/iliyamo/leetcode-tracker/internal/service"
)

// Server holds shared resources. It is not the HTTP server itself.
type Server struct {
	Config config.Config
	Logger zerolog.Logger
	DB     *sql.DB
	Redis  *redis.Client // nil when the activity feed is disabled
	Echo   *echo.Echo

	consumer *queue.Consumer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New opens the database, makes sure the schema exists and builds the HTTP
// stack. Redis and RabbitMQ are optional: when either is missing the server
// runs without the activity feed or without event publishing.
func New(cfg config.Config, log zerolog.Logger) (*Server, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	s := &Server{Config: cfg, Logger: log, DB: db}

	s.Redis = config.NewRedisClient(cfg.Redis)
	if s.Redis == nil && cfg.Redis.Addr != "" {
		log.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unreachable, continuing without activity feed")
	}

	var events handler.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		events = service.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
	}

	var activity handler.ActivityReader
	if s.Redis != nil {
		feed := repository.NewActivityRepo(s.Redis, cfg.Activity.Limit)
		activity = feed
		if cfg.RabbitMQ.URL != "" {
			s.consumer = &queue.Consumer{
				URL:      cfg.RabbitMQ.URL,
				Queue:    cfg.RabbitMQ.Queue,
				Recorder: feed,
				Log:      log.With().Str("component", "activity_consumer").Logger(),
			}
		}
	}

	s.Echo = NewEcho(log)
	router.RegisterRoutes(s.Echo, db, handler.NewProblemHandler(events), handler.NewUserHandler(activity))
	return s, nil
}

// NewEcho returns an echo instance with the service's error handler and
// middleware chain installed but no routes.
func NewEcho(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errs.Handler(log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.ContextLogger(log))
	e.Use(middleware.RequestLogger())
	return e
}

// Start launches the activity consumer, if any, and blocks serving HTTP
// until Shutdown is called.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	if s.consumer != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.Logger.Error().Err(err).Msg("activity consumer stopped")
			}
		}()
	}

	s.Logger.Info().
		Str("port", s.Config.App.Port).
		Str("env", s.Config.App.Env).
		Msg("starting server")

	if err := s.Echo.Start(":" + s.Config.App.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, stops the consumer and closes the
// database and redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error
	if err := s.Echo.Shutdown(ctx); err != nil {
		errList = append(errList, fmt.Errorf("shutdown http server: %w", err))
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	if err := s.DB.Close(); err != nil {
		errList = append(errList, fmt.Errorf("close database: %w", err))
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errList...)
}
