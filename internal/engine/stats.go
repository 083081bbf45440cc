package engine

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// DefaultLevel is used when a roster entry carries no level.
const DefaultLevel = 50

// Generation-1 stat formula with perfect IVs/EVs assumed for every pokemon.
const (
	fixedIV = 15
	fixedEV = 65535
)

var evBonus = math.Sqrt(fixedEV) / 4

// DeriveStats applies the stat-growth formula to base stats at a level.
func DeriveStats(base game.BaseStats, level int) game.DerivedStats {
	if level <= 0 {
		level = DefaultLevel
	}
	return game.DerivedStats{
		HP:      hpStat(base.HP, level),
		Attack:  otherStat(base.Attack, level),
		Defense: otherStat(base.Defense, level),
		Speed:   otherStat(base.Speed, level),
	}
}

func growth(base, level int) float64 {
	if base < 0 {
		base = 0
	}
	return (float64(base+fixedIV)*2 + evBonus) * float64(level) / 100
}

func hpStat(base, level int) int {
	return atLeastOne(int(math.Floor(growth(base, level) + float64(level) + 10)))
}

func otherStat(base, level int) int {
	return atLeastOne(int(math.Floor(growth(base, level) + 5)))
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// scaleStat applies a multiplier and rounds, never going negative.
func scaleStat(v int, mult float64) int {
	out := int(math.Round(float64(v) * mult))
	if out < 0 {
		return 0
	}
	return out
}

// PreparePokemon turns a roster entry into a fresh combatant. Weather and
// time-of-day multipliers apply to attack, defense and speed; HP is left
// unscaled.
func PreparePokemon(entry game.RosterEntry, side game.Side, index int, condition string, timeBonus float64) game.BattlePokemon {
	level := entry.Level
	if level <= 0 {
		level = DefaultLevel
	}
	if timeBonus <= 0 {
		timeBonus = 1
	}
	derived := DeriveStats(entry.Base, level)
	weatherMult := WeatherMultiplier(entry.Type, condition)
	total := weatherMult * timeBonus
	return game.BattlePokemon{
		PokemonID:         entry.PokemonID,
		Name:              entry.Name,
		Type:              entry.Type,
		Level:             level,
		SpriteURL:         entry.SpriteURL,
		Base:              entry.Base,
		Team:              side,
		RosterIndex:       index,
		MaxHP:             derived.HP,
		CurrentHP:         derived.HP,
		EffectiveAttack:   scaleStat(derived.Attack, total),
		EffectiveDefense:  scaleStat(derived.Defense, total),
		EffectiveSpeed:    scaleStat(derived.Speed, total),
		WeatherMultiplier: weatherMult,
		WeatherStatus:     weatherStatusLabel(weatherMult, condition),
		Status:            game.StatusNone,
	}
}

// PrepareRoster prepares every entry of one side, keeping roster order.
func PrepareRoster(entries []game.RosterEntry, side game.Side, condition string, timeBonus float64) []game.BattlePokemon {
	return lo.Map(entries, func(e game.RosterEntry, i int) game.BattlePokemon {
		return PreparePokemon(e, side, i, condition, timeBonus)
	})
}

func weatherStatusLabel(mult float64, condition string) string {
	name := normalizeCondition(condition)
	switch {
	case name == "" || mult == 1:
		return "unaffected"
	case mult > 1:
		return fmt.Sprintf("boosted by %s (x%.2f)", name, mult)
	default:
		return fmt.Sprintf("weakened by %s (x%.2f)", name, mult)
	}
}
