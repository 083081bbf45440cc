package engine

import "github.com/yananas974/PokemonBattle-sub000/internal/game"

// statusHooks is the extension point for status conditions. Every
// condition is registered with no-op handlers; only sandstorm weather
// damage currently changes HP at end of turn.
type statusHooks struct {
	// beforeMove reports whether the pokemon may act this turn.
	beforeMove func(p *game.BattlePokemon, rng Rand) bool
	// endOfTurn returns an optional action to append to the log.
	endOfTurn func(p *game.BattlePokemon, turn int) *game.TurnAction
}

func canAct(*game.BattlePokemon, Rand) bool                 { return true }
func noEndOfTurn(*game.BattlePokemon, int) *game.TurnAction { return nil }

var statusTable = map[game.StatusCondition]statusHooks{
	game.StatusNone:      {beforeMove: canAct, endOfTurn: noEndOfTurn},
	game.StatusBurn:      {beforeMove: canAct, endOfTurn: noEndOfTurn},
	game.StatusFreeze:    {beforeMove: canAct, endOfTurn: noEndOfTurn},
	game.StatusParalysis: {beforeMove: canAct, endOfTurn: noEndOfTurn},
	game.StatusPoison:    {beforeMove: canAct, endOfTurn: noEndOfTurn},
	game.StatusSleep:     {beforeMove: canAct, endOfTurn: noEndOfTurn},
}

func hooksFor(s game.StatusCondition) statusHooks {
	if h, ok := statusTable[s]; ok {
		return h
	}
	return statusTable[game.StatusNone]
}
