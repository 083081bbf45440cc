package storage

import "github.com/yananas974/PokemonBattle-sub000/internal/game"

type Repository interface {
	// ListSpecies returns the catalog with each species' moves preloaded.
	ListSpecies() ([]game.Species, error)
	GetSpeciesByIDs(ids []uint) ([]game.Species, error)
	// MovesFor returns the moves a species knows. Unknown ids yield an
	// empty list.
	MovesFor(speciesID uint) ([]game.Move, error)

	SaveBattleRecord(rec *game.BattleRecord) error
	// UpdateStatsOnBattleEnd adds one played battle to the player's
	// profile plus a win, loss or forfeit.
	UpdateStatsOnBattleEnd(email string, winner game.Winner, forfeited bool) error
	GetStatsByEmail(email string) (*game.User, error)
	UpsertUser(email, name string) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
}
