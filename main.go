package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/naiplawan/kaichid-sub001/internal/config"
	"github.com/naiplawan/kaichid-sub001/internal/database/db_client"
	"github.com/naiplawan/kaichid-sub001/internal/http/http_server"
	"github.com/naiplawan/kaichid-sub001/internal/profile"
	"github.com/naiplawan/kaichid-sub001/internal/redis/redis_client"
	"github.com/naiplawan/kaichid-sub001/internal/services/session"
	"github.com/naiplawan/kaichid-sub001/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Redis (profile cache)
	redisClient, err := redis_client.NewRedisClient(cfg.RedisProfilesHost, int(cfg.RedisProfilesPort))
	if err != nil {
		Log.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()

	// 4. Postgres (profile store)
	pgDb, err := db_client.Open(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDb)
	if err != nil {
		Log.Fatal("pg-open", zap.Error(err))
	}
	defer pgDb.Close()

	// 5. Profile lookup: postgres behind a read-through cache
	profiles := profile.NewCachedService(
		profile.NewPostgresService(pgDb),
		redisClient,
		time.Duration(cfg.ProfileCacheTTLSeconds)*time.Second,
	)

	// 6. WebSockets hub + session coordinator
	hub := ws.NewHub()
	sessions := session.NewService(profiles, hub)

	// 7. WS server
	wsSrv := ws.NewWsServer(hub, sessions,
		time.Duration(cfg.DispatchTimeoutMs)*time.Millisecond)

	// 8. HTTP + WS server
	httpServer := http_server.NewHttpServer(cfg.HttpServerPort, wsSrv, sessions)

	go func() {
		<-ctx.Done()
		Log.Info("shutting down")
		_ = httpServer.Dispose()
		hub.Shutdown()
	}()

	if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
