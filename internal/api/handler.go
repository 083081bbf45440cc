package api

import (
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/service"
	"github.com/yananas974/PokemonBattle-sub000/internal/storage"
)

type rosterSource interface {
	Roster(reqs []storage.RosterRequest) ([]game.RosterEntry, error)
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	registry *service.Registry
	rosters  rosterSource
	repo     storage.Repository
	hub      *service.Hub
}

// NewBattleHandler wires the session registry, the roster provider, the
// catalog repository and the live update hub into the HTTP layer.
func NewBattleHandler(registry *service.Registry, rosters rosterSource, repo storage.Repository, hub *service.Hub) *BattleHandler {
	return &BattleHandler{registry: registry, rosters: rosters, repo: repo, hub: hub}
}
