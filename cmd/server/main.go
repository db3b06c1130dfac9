package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ekincan/iptv-gateway/internal/cache"
	"github.com/ekincan/iptv-gateway/internal/config"
	"github.com/ekincan/iptv-gateway/internal/database"
	"github.com/ekincan/iptv-gateway/internal/handler"
	"github.com/ekincan/iptv-gateway/internal/identity"
	"github.com/ekincan/iptv-gateway/internal/repository"
	"github.com/ekincan/iptv-gateway/internal/router"
	"github.com/ekincan/iptv-gateway/internal/streaming"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, running without cache")
	}
	responseCache := cache.New(rdb, cfg.CacheTTL)

	users := repository.NewUserRepo(db)
	categories := repository.NewCategoryRepo(db)
	liveStreams := repository.NewLiveStreamRepo(db)
	vod := repository.NewVodRepo(db)
	series := repository.NewSeriesRepo(db)
	epg := repository.NewEpgRepo(db)
	xtream := repository.NewXtreamRepo(db)

	ident := identity.NewService(users, cfg.JWTSecret, cfg.AccessTTLMin)
	catalog := streaming.NewService(categories, liveStreams, vod, series, epg)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, ident), cfg.JWTSecret)
	router.RegisterStreaming(e, handler.NewStreamingHandler(catalog, responseCache), cfg.JWTSecret)
	router.RegisterPlayer(e, handler.NewPlayerHandler(catalog, responseCache, ident, xtream))

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
