package engine

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// MoveRepository returns the known moves for a pokemon. Unknown ids yield
// an empty list, never an error.
type MoveRepository interface {
	MovesFor(pokemonID uint) []game.PokemonMove
}

// MoveChooser picks the move the active pokemon of side uses this turn.
type MoveChooser func(side game.Side, p *game.BattlePokemon) game.PokemonMove

// BattleSetup describes a battle before any turn is played.
type BattleSetup struct {
	BattleID     string
	Team1        []game.RosterEntry
	Team2        []game.RosterEntry
	Weather      string
	WeatherTurns int
	TimeBonus    float64
}

// PickMove chooses uniformly among moves, falling back to Tackle.
func PickMove(rng Rand, moves []game.PokemonMove) game.PokemonMove {
	if len(moves) == 0 {
		return Tackle
	}
	return moves[rng.Intn(len(moves))]
}

// MovesOrFallback returns moves, or a single Tackle when there are none.
func MovesOrFallback(moves []game.PokemonMove) []game.PokemonMove {
	if len(moves) == 0 {
		return []game.PokemonMove{Tackle}
	}
	return moves
}

// NewBattleState prepares both rosters and sets the first available
// combatant of each side active. The battle starts at turn 1.
func NewBattleState(setup BattleSetup) *game.BattleState {
	weather := NewWeather(setup.Weather, setup.WeatherTurns)
	timeBonus := setup.TimeBonus
	if timeBonus <= 0 {
		timeBonus = 1
	}
	st := &game.BattleState{
		BattleID:  setup.BattleID,
		Turn:      1,
		Phase:     game.PhaseBattle,
		Team1:     PrepareRoster(setup.Team1, game.Team1, weather.Condition, timeBonus),
		Team2:     PrepareRoster(setup.Team2, game.Team2, weather.Condition, timeBonus),
		Weather:   weather,
		TimeBonus: timeBonus,
		Winner:    game.WinnerNone,
		Actions:   []game.TurnAction{},
	}
	st.Active1 = firstAvailable(st.Team1)
	st.Active2 = firstAvailable(st.Team2)
	return st
}

// firstAvailable returns the index of the first non-KO member, or -1.
func firstAvailable(roster []game.BattlePokemon) int {
	_, idx, ok := lo.FindIndexOf(roster, func(p game.BattlePokemon) bool { return !p.IsKO })
	if !ok {
		return -1
	}
	return idx
}

func hasRemaining(roster []game.BattlePokemon) bool {
	return lo.ContainsBy(roster, func(p game.BattlePokemon) bool { return !p.IsKO })
}

// TurnOrder returns the side acting first. Higher effective speed goes
// first; team1 wins ties.
func TurnOrder(st *game.BattleState) (first, second game.Side) {
	p1, p2 := st.Active(game.Team1), st.Active(game.Team2)
	if p1 == nil || p2 == nil {
		return game.Team1, game.Team2
	}
	if p2.EffectiveSpeed > p1.EffectiveSpeed {
		return game.Team2, game.Team1
	}
	return game.Team1, game.Team2
}

// ExecuteAttack resolves side's attack against the opposing active
// combatant, applies the damage, logs the action and switches in a
// replacement on KO. It reports false when no attack took place.
func ExecuteAttack(st *game.BattleState, res *Resolver, side game.Side, move game.PokemonMove) (game.TurnAction, bool) {
	attacker := st.Active(side)
	defender := st.Active(side.Opponent())
	if attacker == nil || defender == nil || attacker.IsKO {
		return game.TurnAction{}, false
	}
	if !hooksFor(attacker.Status).beforeMove(attacker, res.rng) {
		return game.TurnAction{}, false
	}
	action := res.Resolve(attacker, defender, move, st.Turn, st.Weather)
	if action.Accuracy {
		defender.ApplyDamage(action.Damage)
		action.RemainingHP = defender.CurrentHP
		action.IsKO = defender.IsKO
	}
	st.Log(action)
	if defender.IsKO {
		SwitchIn(st, side.Opponent())
	}
	return action, true
}

// SwitchIn replaces a side's KO'd active combatant with the first non-KO
// roster member, or clears the slot when none is left.
func SwitchIn(st *game.BattleState, side game.Side) *game.BattlePokemon {
	next := firstAvailable(st.Roster(side))
	st.SetActiveIndex(side, next)
	p := st.Active(side)
	if p == nil {
		return nil
	}
	st.Log(game.TurnAction{
		Turn:              st.Turn,
		Phase:             game.ActionSwitch,
		Attacker:          p.Snapshot(),
		TypeEffectiveness: 1,
		WeatherBonus:      1,
		RemainingHP:       p.CurrentHP,
		Description:       fmt.Sprintf("%s sends out %s!", SideLabel(side), DisplayName(p.Name)),
	})
	return p
}

// PlayTurn runs both attacks of a turn in speed order. A combatant knocked
// out by the first attack does not act, and neither does its replacement.
func PlayTurn(st *game.BattleState, res *Resolver, choose MoveChooser) {
	first, second := TurnOrder(st)
	firstMon := st.Active(first)
	secondIdx := st.ActiveIndex(second)
	if firstMon == nil || secondIdx < 0 {
		return
	}
	ExecuteAttack(st, res, first, choose(first, firstMon))

	roster := st.Roster(second)
	if roster[secondIdx].IsKO || st.ActiveIndex(second) != secondIdx {
		return
	}
	ExecuteAttack(st, res, second, choose(second, &roster[secondIdx]))
}

// ApplyEndOfTurnWeather deals sandstorm damage of floor(max_hp/16) to
// every non-KO active combatant that is not Rock or Ground, then runs
// status end-of-turn hooks.
func ApplyEndOfTurnWeather(st *game.BattleState) {
	for _, side := range []game.Side{game.Team1, game.Team2} {
		p := st.Active(side)
		if p == nil || p.IsKO {
			continue
		}
		if isSandstorm(st.Weather) && !sandstormImmune(p.Type) {
			dmg := p.ApplyDamage(p.MaxHP / 16)
			if dmg > 0 {
				st.Log(game.TurnAction{
					Turn:              st.Turn,
					Phase:             game.ActionWeatherDamage,
					Defender:          p.Snapshot(),
					Damage:            dmg,
					Accuracy:          true,
					TypeEffectiveness: 1,
					WeatherBonus:      1,
					RemainingHP:       p.CurrentHP,
					IsKO:              p.IsKO,
					Description:       fmt.Sprintf("%s is buffeted by the sandstorm and takes %d damage.", DisplayName(p.Name), dmg),
				})
			}
		}
		if !p.IsKO {
			if a := hooksFor(p.Status).endOfTurn(p, st.Turn); a != nil {
				st.Log(*a)
			}
		}
		if p.IsKO {
			SwitchIn(st, side)
		}
	}
}

// AdvanceTurn increments the turn counter and ticks the weather.
func AdvanceTurn(st *game.BattleState) {
	st.Turn++
	st.Weather = tickWeather(st.Weather)
}

// UpdateWinner finalizes the battle when at least one side is exhausted.
// Both sides exhausted is a draw. It returns the current winner.
func UpdateWinner(st *game.BattleState) game.Winner {
	left1, left2 := hasRemaining(st.Team1), hasRemaining(st.Team2)
	switch {
	case !left1 && !left2:
		Finish(st, game.WinnerDraw)
	case !left1:
		Finish(st, game.WinnerTeam2)
	case !left2:
		Finish(st, game.WinnerTeam1)
	}
	return st.Winner
}

// Finish moves the battle to its terminal phase with the given winner.
func Finish(st *game.BattleState, w game.Winner) {
	st.Winner = w
	st.Phase = game.PhaseFinished
	st.IsPlayerTurn = false
	st.WaitingForPlayerMove = false
}

// SideLabel names a side in the battle log.
func SideLabel(s game.Side) string {
	if s == game.Team1 {
		return "Team 1"
	}
	return "Team 2"
}
