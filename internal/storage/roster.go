package storage

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/yananas974/PokemonBattle-sub000/internal/dedupe"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/keys"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrInvalidLevel   = errors.New("level must be between 1 and 100")
)

const maxLevel = 100

// RosterRequest picks one species for a roster slot. Level 0 means the
// default battle level.
type RosterRequest struct {
	SpeciesID uint `json:"species_id"`
	Level     int  `json:"level"`
}

type speciesSource interface {
	GetSpeciesByIDs(ids []uint) ([]game.Species, error)
}

// RosterProvider turns species ids into prepared roster entries.
type RosterProvider struct {
	repo speciesSource
}

func NewRosterProvider(repo speciesSource) *RosterProvider {
	return &RosterProvider{repo: repo}
}

// Roster resolves reqs in order. Repeated species are allowed.
func (p *RosterProvider) Roster(reqs []RosterRequest) ([]game.RosterEntry, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	for _, r := range reqs {
		if r.Level < 0 || r.Level > maxLevel {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidLevel, r.Level)
		}
	}
	ids := lo.Uniq(lo.Map(reqs, func(r RosterRequest, _ int) uint { return r.SpeciesID }))
	v, err, _ := dedupe.SpeciesGroup.Do(keys.SpeciesIDsKey(ids), func() (interface{}, error) {
		return p.repo.GetSpeciesByIDs(ids)
	})
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(v.([]game.Species), func(s game.Species) uint { return s.ID })

	out := make([]game.RosterEntry, 0, len(reqs))
	for _, r := range reqs {
		s, ok := byID[r.SpeciesID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownSpecies, r.SpeciesID)
		}
		out = append(out, game.RosterEntry{
			PokemonID: s.ID,
			Name:      s.Name,
			Type:      game.ElementType(s.Type),
			Level:     r.Level,
			Base:      s.BaseStats(),
			SpriteURL: s.SpriteURL,
		})
	}
	return out, nil
}
