package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/api"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/engine"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"
	"github.com/yananas974/PokemonBattle-sub000/internal/service"
	"github.com/yananas974/PokemonBattle-sub000/internal/storage"
	"github.com/yananas974/PokemonBattle-sub000/internal/version"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})
	if lvl := os.Getenv(constants.EnvLogLevel); lvl != "" {
		logging.SetLevel(logging.ParseLevel(lvl))
	}

	// Species and move catalog (required). Path may be provided via
	// POKEBATTLE_CONFIG or defaults to ./config.yaml.
	cfg := loadConfigOrExit(envOr(constants.EnvConfigPath, constants.DefaultConfigPath))
	repo := createRepositoryOrExit(envOr(constants.EnvDatabasePath, constants.DefaultDatabasePath), cfg)

	hub := service.NewHub()
	registry := service.NewRegistry(service.Options{
		TTL:              cfg.SessionTTL,
		EvictionInterval: cfg.EvictionInterval,
		MaxTurns:         cfg.MaxTurns,
		WeatherTurns:     cfg.WeatherTurns,
		HackProbability:  cfg.HackProbability,
		HackTimeLimit:    cfg.HackTimeLimit,
		Rand:             engine.NewLockedRand(time.Now().UnixNano()),
		Moves:            storage.NewCachedMoves(repo),
		Recorder:         storage.NewBattleRecorder(repo),
		Hub:              hub,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background sweeper: drops sessions whose TTL ran out and closes their
	// live streams.
	go registry.Run(ctx)

	handler := api.NewBattleHandler(registry, storage.NewRosterProvider(repo), repo, hub)
	router := api.NewRouter(handler, api.NewAuthHandler(repo))

	logging.Info("Starting pokebattle", logging.Fields{
		"version":               version.Version,
		"commit":                version.Commit,
		constants.LogFieldCount: len(cfg.Species),
	})
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := serve(ctx, srv); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
