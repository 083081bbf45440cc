package main

import (
	"os"

	"github.com/yananas974/PokemonBattle-sub000/internal/config"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"
	"github.com/yananas974/PokemonBattle-sub000/internal/storage"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a config.yaml with a 'species_list' (name,type,base_stats,moves) and a 'move_list' (name,type,power,accuracy,pp,category)",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, cfg.Species, cfg.Moves)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldSource: dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
