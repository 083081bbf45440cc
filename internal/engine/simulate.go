package engine

import "github.com/yananas974/PokemonBattle-sub000/internal/game"

// DefaultMaxTurns bounds a simulated battle.
const DefaultMaxTurns = 100

// SimulateInput configures a battle played to completion by the AI on
// both sides.
type SimulateInput struct {
	BattleSetup
	MaxTurns int
}

// Simulate plays a full battle. It always terminates with a winner of
// team1, team2 or draw; running out of turns is a draw.
func Simulate(in SimulateInput, moves MoveRepository, rng Rand) *game.BattleState {
	maxTurns := in.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	st := NewBattleState(in.BattleSetup)
	if UpdateWinner(st) != game.WinnerNone {
		return st
	}

	res := NewResolver(rng)
	choose := func(_ game.Side, p *game.BattlePokemon) game.PokemonMove {
		var known []game.PokemonMove
		if moves != nil {
			known = moves.MovesFor(p.PokemonID)
		}
		return PickMove(rng, known)
	}

	for {
		PlayTurn(st, res, choose)
		ApplyEndOfTurnWeather(st)
		if UpdateWinner(st) != game.WinnerNone {
			return st
		}
		if st.Turn >= maxTurns {
			break
		}
		AdvanceTurn(st)
	}
	Finish(st, game.WinnerDraw)
	return st
}
