package game

import "strings"

// ElementType is the elemental type of a pokemon or a move.
type ElementType string

const (
	Normal   ElementType = "normal"
	Fire     ElementType = "fire"
	Water    ElementType = "water"
	Electric ElementType = "electric"
	Grass    ElementType = "grass"
	Ice      ElementType = "ice"
	Fighting ElementType = "fighting"
	Poison   ElementType = "poison"
	Ground   ElementType = "ground"
	Flying   ElementType = "flying"
	Psychic  ElementType = "psychic"
	Bug      ElementType = "bug"
	Rock     ElementType = "rock"
	Ghost    ElementType = "ghost"
	Dragon   ElementType = "dragon"
	Dark     ElementType = "dark"
	Steel    ElementType = "steel"
	Fairy    ElementType = "fairy"
)

// AllTypes lists the 18 element types in canonical order.
var AllTypes = []ElementType{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

// ParseElementType normalizes s and reports whether it names a known type.
func ParseElementType(s string) (ElementType, bool) {
	t := ElementType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTypes {
		if known == t {
			return t, true
		}
	}
	return t, false
}

// MoveCategory is kept for forward compatibility: the damage formula does
// not branch on it.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// StatusCondition is a persistent status ailment.
type StatusCondition string

const (
	StatusNone      StatusCondition = "none"
	StatusBurn      StatusCondition = "burn"
	StatusFreeze    StatusCondition = "freeze"
	StatusParalysis StatusCondition = "paralysis"
	StatusPoison    StatusCondition = "poison"
	StatusSleep     StatusCondition = "sleep"
)

// Side identifies one of the two rosters. Team1 is the player in
// interactive battles.
type Side string

const (
	Team1 Side = "team1"
	Team2 Side = "team2"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Team1 {
		return Team2
	}
	return Team1
}

type Winner string

const (
	WinnerNone  Winner = "none"
	WinnerTeam1 Winner = "team1"
	WinnerTeam2 Winner = "team2"
	WinnerDraw  Winner = "draw"
)

// WinnerFor returns the winner value for a side.
func WinnerFor(s Side) Winner {
	if s == Team1 {
		return WinnerTeam1
	}
	return WinnerTeam2
}

type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseBattle   Phase = "battle"
	PhaseFinished Phase = "finished"
)

// ActionPhase tags a TurnAction with what produced it.
type ActionPhase string

const (
	ActionAttack        ActionPhase = "attack"
	ActionSwitch        ActionPhase = "switch"
	ActionHackTrigger   ActionPhase = "hack_trigger"
	ActionHackBonus     ActionPhase = "hack_bonus"
	ActionHackPenalty   ActionPhase = "hack_penalty"
	ActionWeatherDamage ActionPhase = "weather_damage"
	ActionForfeit       ActionPhase = "forfeit"
)

// BattleMode distinguishes persisted battle records.
type BattleMode string

const (
	ModeInteractive BattleMode = "interactive"
	ModeSimulated   BattleMode = "simulated"
)
