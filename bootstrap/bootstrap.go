package bootstrap

import (
	"context"
	"fmt"
	"time"

	"estate-backend/internal/config"
	"estate-backend/internal/infrastructure/database"
	"estate-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Server is the wired application: the Fiber app and the connections it holds.
type Server struct {
	App *fiber.App
	DB  *gorm.DB
	Rdb *redis.Client
}

// New opens and migrates the database, connects Redis when configured and builds the app.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.OpenAndMigrate(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	log.Info().Bool("postgres", database.IsPostgres(cfg.DatabaseURL)).Msg("Database ready")

	rdb, err := OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return &Server{App: router.CreateApp(cfg, db, rdb), DB: db, Rdb: rdb}, nil
}

// OpenRedis returns nil when url is empty.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info().Msg("Redis connected")
	return rdb, nil
}

// Close releases the connections.
func (s *Server) Close() error {
	if s.Rdb != nil {
		_ = s.Rdb.Close()
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
