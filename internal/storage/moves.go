package storage

import (
	"sync"

	"github.com/samber/lo"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/dedupe"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/keys"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"
)

type moveSource interface {
	MovesFor(speciesID uint) ([]game.Move, error)
}

// CachedMoves serves move lists from memory. Concurrent misses for the same
// species share one database load.
type CachedMoves struct {
	src   moveSource
	mu    sync.RWMutex
	cache map[uint][]game.PokemonMove
}

func NewCachedMoves(src moveSource) *CachedMoves {
	return &CachedMoves{src: src, cache: make(map[uint][]game.PokemonMove)}
}

// MovesFor returns the battle moves of a species. Load failures are logged
// and yield an empty list so the battle falls back to Tackle.
func (c *CachedMoves) MovesFor(speciesID uint) []game.PokemonMove {
	c.mu.RLock()
	moves, ok := c.cache[speciesID]
	c.mu.RUnlock()
	if ok {
		return append([]game.PokemonMove(nil), moves...)
	}

	key := keys.MovesKey(speciesID)
	v, err, _ := dedupe.MovesGroup.Do(key, func() (interface{}, error) {
		rows, err := c.src.MovesFor(speciesID)
		if err != nil {
			return nil, err
		}
		out := lo.Map(rows, func(m game.Move, _ int) game.PokemonMove { return m.ToPokemonMove() })
		c.mu.Lock()
		c.cache[speciesID] = out
		c.mu.Unlock()
		return out, nil
	})
	if err != nil {
		logging.Warn("failed to load moves", err, logging.Fields{constants.LogFieldKey: key})
		return nil
	}
	return append([]game.PokemonMove(nil), v.([]game.PokemonMove)...)
}

// Invalidate drops every cached move list.
func (c *CachedMoves) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[uint][]game.PokemonMove)
	c.mu.Unlock()
}
