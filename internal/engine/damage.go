package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	stabMultiplier     = 1.5
	critMultiplier     = 2.0
	critSpeedCap       = 255
	critSpeedDivisor   = 512.0
	varianceMinPercent = 85
	varianceMaxPercent = 100
)

// Tackle is used whenever a pokemon has no moves available.
var Tackle = game.PokemonMove{
	Name:        "Tackle",
	Type:        game.Normal,
	Power:       40,
	Accuracy:    100,
	PP:          35,
	Category:    game.CategoryPhysical,
	CritRatio:   1,
	Description: "A physical attack in which the user charges and slams into the target.",
}

// Resolver runs the move-resolution algorithm. It never mutates the
// combatants it is given.
type Resolver struct {
	rng Rand
}

func NewResolver(rng Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve computes the outcome of attacker using move on defender. A miss
// is a valid zero-damage action.
func (r *Resolver) Resolve(attacker, defender *game.BattlePokemon, move game.PokemonMove, turn int, weather game.WeatherState) game.TurnAction {
	mv := move
	action := game.TurnAction{
		Turn:              turn,
		Phase:             game.ActionAttack,
		Attacker:          attacker.Snapshot(),
		Defender:          defender.Snapshot(),
		Move:              &mv,
		TypeEffectiveness: 1,
		WeatherBonus:      1,
		RemainingHP:       defender.CurrentHP,
	}
	attackerName := DisplayName(attacker.Name)
	defenderName := DisplayName(defender.Name)
	moveName := DisplayName(move.Name)

	// hit iff draw in [0,100) is at most the move accuracy
	if r.rng.Float64()*100 > float64(move.Accuracy) {
		action.Description = fmt.Sprintf("%s used %s, but it missed!", attackerName, moveName)
		return action
	}
	action.Accuracy = true

	level := attacker.Level
	if level <= 0 {
		level = DefaultLevel
	}
	atk := float64(max(attacker.EffectiveAttack, 1))
	def := float64(max(defender.EffectiveDefense, 1))
	base := math.Floor((float64(2*level+10)/250)*(atk/def)*float64(move.Power) + 2)

	stab := 1.0
	if attacker.Type == move.Type {
		stab = stabMultiplier
		action.STAB = true
	}

	eff := Effectiveness(move.Type, defender.Type)
	action.TypeEffectiveness = eff

	crit := 1.0
	critChance := float64(min(critSpeedCap, max(attacker.EffectiveSpeed, 0))) / critSpeedDivisor
	if r.rng.Float64() < critChance {
		crit = critMultiplier
		action.IsCritical = true
	}

	wb := MoveWeatherBonus(move.Type, weather.Condition)
	action.WeatherBonus = wb

	variance := float64(varianceMinPercent+r.rng.Intn(varianceMaxPercent-varianceMinPercent+1)) / 100

	dmg := int(math.Floor(base * stab * eff * crit * wb * variance))
	if dmg < 1 {
		dmg = 1
	}
	action.Damage = dmg
	action.RemainingHP = max(0, defender.CurrentHP-dmg)
	action.IsKO = action.RemainingHP <= 0
	action.Description = describeHit(attackerName, defenderName, moveName, action, weather)
	return action
}

func describeHit(attacker, defender, move string, a game.TurnAction, weather game.WeatherState) string {
	parts := []string{fmt.Sprintf("%s used %s!", attacker, move)}
	if a.STAB {
		parts = append(parts, "Same-type attack bonus!")
	}
	if a.IsCritical {
		parts = append(parts, "A critical hit!")
	}
	switch {
	case a.TypeEffectiveness == 0:
		parts = append(parts, fmt.Sprintf("It doesn't affect %s much...", defender))
	case a.TypeEffectiveness > 1:
		parts = append(parts, "It's super effective!")
	case a.TypeEffectiveness < 1:
		parts = append(parts, "It's not very effective...")
	}
	switch {
	case a.WeatherBonus > 1:
		parts = append(parts, fmt.Sprintf("The %s strengthened the attack!", weather.Condition))
	case a.WeatherBonus < 1:
		parts = append(parts, fmt.Sprintf("The %s weakened the attack!", weather.Condition))
	}
	parts = append(parts, fmt.Sprintf("%s took %d damage.", defender, a.Damage))
	if a.IsKO {
		parts = append(parts, fmt.Sprintf("%s fainted!", defender))
	}
	return strings.Join(parts, " ")
}

// DisplayName title-cases a pokemon or move name for the battle log.
// Casers are stateful, so each call builds its own.
func DisplayName(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}
