package engine

import "github.com/yananas974/PokemonBattle-sub000/internal/game"

type typeRelations struct {
	superEffectiveAgainst   []game.ElementType
	notVeryEffectiveAgainst []game.ElementType
	noEffectAgainst         []game.ElementType
}

var typeChart = map[game.ElementType]typeRelations{
	game.Normal: {
		notVeryEffectiveAgainst: []game.ElementType{game.Rock, game.Steel},
		noEffectAgainst:         []game.ElementType{game.Ghost},
	},
	game.Fire: {
		superEffectiveAgainst:   []game.ElementType{game.Grass, game.Ice, game.Bug, game.Steel},
		notVeryEffectiveAgainst: []game.ElementType{game.Fire, game.Water, game.Rock, game.Dragon},
	},
	game.Water: {
		superEffectiveAgainst:   []game.ElementType{game.Fire, game.Ground, game.Rock},
		notVeryEffectiveAgainst: []game.ElementType{game.Water, game.Grass, game.Dragon},
	},
	game.Electric: {
		superEffectiveAgainst:   []game.ElementType{game.Water, game.Flying},
		notVeryEffectiveAgainst: []game.ElementType{game.Electric, game.Grass, game.Dragon},
		noEffectAgainst:         []game.ElementType{game.Ground},
	},
	game.Grass: {
		superEffectiveAgainst:   []game.ElementType{game.Water, game.Ground, game.Rock},
		notVeryEffectiveAgainst: []game.ElementType{game.Fire, game.Grass, game.Poison, game.Flying, game.Bug, game.Dragon, game.Steel},
	},
	game.Ice: {
		superEffectiveAgainst:   []game.ElementType{game.Grass, game.Ground, game.Flying, game.Dragon},
		notVeryEffectiveAgainst: []game.ElementType{game.Fire, game.Water, game.Ice, game.Steel},
	},
	game.Fighting: {
		superEffectiveAgainst:   []game.ElementType{game.Normal, game.Ice, game.Rock, game.Dark, game.Steel},
		notVeryEffectiveAgainst: []game.ElementType{game.Poison, game.Flying, game.Psychic, game.Bug, game.Fairy},
		noEffectAgainst:         []game.ElementType{game.Ghost},
	},
	game.Poison: {
		superEffectiveAgainst:   []game.ElementType{game.Grass, game.Fairy},
		notVeryEffectiveAgainst: []game.ElementType{game.Poison, game.Ground, game.Rock, game.Ghost},
		noEffectAgainst:         []game.ElementType{game.Steel},
	},
	game.Ground: {
		superEffectiveAgainst:   []game.ElementType{game.Fire, game.Electric, game.Poison, game.Rock, game.Steel},
		notVeryEffectiveAgainst: []game.ElementType{game.Grass, game.Bug},
		noEffectAgainst:         []game.ElementType{game.Flying},
	},
	game.Flying: {
		superEffectiveAgainst:   []game.ElementType{game.Grass, game.Fighting, game.Bug},
		notVeryEffectiveAgainst: []game.ElementType{game.Electric, game.Rock, game.Steel},
	},
	game.Psychic: {
		superEffectiveAgainst:   []game.ElementType{game.Fighting, game.Poison},
		notVeryEffectiveAgainst: []game.ElementType{game.Psychic, game.Steel},
		noEffectAgainst:         []game.ElementType{game.Dark},
	},
	game.Bug: {
		superEffectiveAgainst:   []game.ElementType{game.Grass, game.Psychic, game.Dark},
		notVeryEffectiveAgainst: []game.ElementType{game.Fire, game.Fighting, game.Poison, game.Flying, game.Ghost, game.Steel, game.Fairy},
	},
	game.Rock: {
		superEffectiveAgainst:   []game.ElementType{game.Fire, game.Ice, game.Flying, game.Bug},
		notVeryEffectiveAgainst: []game.ElementType{game.Fighting, game.Ground, game.Steel},
	},
	game.Ghost: {
		superEffectiveAgainst:   []game.ElementType{game.Psychic, game.Ghost},
		notVeryEffectiveAgainst: []game.ElementType{game.Dark},
		noEffectAgainst:         []game.ElementType{game.Normal},
	},
	game.Dragon: {
		superEffectiveAgainst:   []game.ElementType{game.Dragon},
		notVeryEffectiveAgainst: []game.ElementType{game.Steel},
		noEffectAgainst:         []game.ElementType{game.Fairy},
	},
	game.Dark: {
		superEffectiveAgainst:   []game.ElementType{game.Psychic, game.Ghost},
		notVeryEffectiveAgainst: []game.ElementType{game.Fighting, game.Dark, game.Fairy},
	},
	game.Steel: {
		superEffectiveAgainst:   []game.ElementType{game.Ice, game.Rock, game.Fairy},
		notVeryEffectiveAgainst: []game.ElementType{game.Fire, game.Water, game.Electric, game.Steel},
	},
	game.Fairy: {
		superEffectiveAgainst:   []game.ElementType{game.Fighting, game.Dragon, game.Dark},
		notVeryEffectiveAgainst: []game.ElementType{game.Fire, game.Poison, game.Steel},
	},
}

// effectivenessIndex flattens typeChart for O(1) lookups.
var effectivenessIndex = buildEffectivenessIndex()

func buildEffectivenessIndex() map[game.ElementType]map[game.ElementType]float64 {
	idx := make(map[game.ElementType]map[game.ElementType]float64, len(typeChart))
	for atk, rel := range typeChart {
		row := make(map[game.ElementType]float64)
		for _, d := range rel.superEffectiveAgainst {
			row[d] = 2
		}
		for _, d := range rel.notVeryEffectiveAgainst {
			row[d] = 0.5
		}
		for _, d := range rel.noEffectAgainst {
			row[d] = 0
		}
		idx[atk] = row
	}
	return idx
}

// Effectiveness returns the damage multiplier of an attack type against a
// defending type: 0, 0.5, 1 or 2. Pairs not listed, including unknown
// types, are neutral.
func Effectiveness(attack, defense game.ElementType) float64 {
	row, ok := effectivenessIndex[attack]
	if !ok {
		return 1
	}
	if m, ok := row[defense]; ok {
		return m
	}
	return 1
}
