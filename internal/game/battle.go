package game

import (
	"math"
	"time"
)

// BaseStats are the species stats a pokemon's battle stats derive from.
type BaseStats struct {
	HP      int `json:"hp" yaml:"hp"`
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
	Speed   int `json:"speed" yaml:"speed"`
}

// DerivedStats are the level-scaled stats before weather and time modifiers.
type DerivedStats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

// RosterEntry is one prepared roster slot supplied by the roster provider.
type RosterEntry struct {
	PokemonID uint        `json:"pokemon_id"`
	Name      string      `json:"name"`
	Type      ElementType `json:"type"`
	Level     int         `json:"level"`
	Base      BaseStats   `json:"base_stats"`
	SpriteURL string      `json:"sprite_url,omitempty"`
}

// PokemonMove is an immutable move definition.
type PokemonMove struct {
	Name        string       `json:"name"`
	Type        ElementType  `json:"type"`
	Power       int          `json:"power"`
	Accuracy    int          `json:"accuracy"`
	PP          int          `json:"pp"`
	Category    MoveCategory `json:"category"`
	CritRatio   int          `json:"crit_ratio"`
	Description string       `json:"description"`
}

// BattlePokemon is a mutable combat participant.
type BattlePokemon struct {
	PokemonID   uint        `json:"pokemon_id"`
	Name        string      `json:"name"`
	Type        ElementType `json:"type"`
	Level       int         `json:"level"`
	SpriteURL   string      `json:"sprite_url,omitempty"`
	Base        BaseStats   `json:"base_stats"`
	Team        Side        `json:"team"`
	RosterIndex int         `json:"roster_index"`

	MaxHP            int `json:"max_hp"`
	CurrentHP        int `json:"current_hp"`
	EffectiveAttack  int `json:"effective_attack"`
	EffectiveDefense int `json:"effective_defense"`
	EffectiveSpeed   int `json:"effective_speed"`

	WeatherMultiplier float64         `json:"weather_multiplier"`
	WeatherStatus     string          `json:"weather_status"`
	Status            StatusCondition `json:"status"`
	IsKO              bool            `json:"is_ko"`
}

// ApplyDamage lowers CurrentHP by dmg, never below zero, and returns the
// HP actually removed.
func (p *BattlePokemon) ApplyDamage(dmg int) int {
	if dmg < 0 {
		dmg = 0
	}
	if dmg > p.CurrentHP {
		dmg = p.CurrentHP
	}
	p.CurrentHP -= dmg
	p.IsKO = p.CurrentHP == 0
	return dmg
}

// ApplyHPPenalty removes floor(percent*CurrentHP). The result stays at 1 HP
// or more unless the pokemon was already at 0.
func (p *BattlePokemon) ApplyHPPenalty(percent float64) int {
	if p.CurrentHP <= 0 {
		p.CurrentHP = 0
		p.IsKO = true
		return 0
	}
	loss := int(math.Floor(float64(p.CurrentHP) * percent))
	if p.CurrentHP-loss < 1 {
		loss = p.CurrentHP - 1
	}
	if loss < 0 {
		loss = 0
	}
	return p.ApplyDamage(loss)
}

// Snapshot captures identity and HP for the action log.
func (p *BattlePokemon) Snapshot() *PokemonSnapshot {
	if p == nil {
		return nil
	}
	return &PokemonSnapshot{
		PokemonID: p.PokemonID,
		Name:      p.Name,
		Type:      p.Type,
		Team:      p.Team,
		CurrentHP: p.CurrentHP,
		MaxHP:     p.MaxHP,
	}
}

// PokemonSnapshot is the frozen view of a combatant stored in TurnAction.
type PokemonSnapshot struct {
	PokemonID uint        `json:"pokemon_id"`
	Name      string      `json:"name"`
	Type      ElementType `json:"type"`
	Team      Side        `json:"team"`
	CurrentHP int         `json:"current_hp"`
	MaxHP     int         `json:"max_hp"`
}

// TurnAction is one append-only entry of the battle narrative.
type TurnAction struct {
	Turn              int              `json:"turn"`
	Phase             ActionPhase      `json:"phase"`
	Attacker          *PokemonSnapshot `json:"attacker,omitempty"`
	Defender          *PokemonSnapshot `json:"defender,omitempty"`
	Move              *PokemonMove     `json:"move,omitempty"`
	Damage            int              `json:"damage"`
	IsCritical        bool             `json:"is_critical"`
	Accuracy          bool             `json:"accuracy"`
	STAB              bool             `json:"stab"`
	TypeEffectiveness float64          `json:"type_effectiveness"`
	WeatherBonus      float64          `json:"weather_bonus"`
	Description       string           `json:"description"`
	RemainingHP       int              `json:"remaining_hp"`
	IsKO              bool             `json:"is_ko"`
}

// WeatherState is the active weather and how many turns it has left.
// An empty Condition means no weather.
type WeatherState struct {
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Turns       int    `json:"weather_turns"`
}

// Active reports whether a weather condition is in effect.
func (w WeatherState) Active() bool { return w.Condition != "" }

// HackChallenge is a timed puzzle. Solution never leaves the server.
type HackChallenge struct {
	ID            string `json:"id"`
	EncryptedText string `json:"encrypted_text"`
	Solution      string `json:"-"`
	Algorithm     string `json:"algorithm"`
	Difficulty    string `json:"difficulty"`
	Hint          string `json:"hint"`
	TimeLimit     int    `json:"time_limit"`
}

// BattleState is the full battle aggregate. Sessions own one and hand out
// deep copies through Clone.
type BattleState struct {
	BattleID  string          `json:"battle_id"`
	Turn      int             `json:"turn"`
	Phase     Phase           `json:"phase"`
	Team1     []BattlePokemon `json:"team1"`
	Team2     []BattlePokemon `json:"team2"`
	Active1   int             `json:"active1"`
	Active2   int             `json:"active2"`
	Actions   []TurnAction    `json:"actions"`
	Weather   WeatherState    `json:"weather"`
	TimeBonus float64         `json:"time_bonus"`
	Winner    Winner          `json:"winner"`

	PlayerID             string         `json:"player_id,omitempty"`
	IsPlayerTurn         bool           `json:"is_player_turn"`
	WaitingForPlayerMove bool           `json:"waiting_for_player_move"`
	AvailableMoves       []PokemonMove  `json:"available_moves"`
	IsHackActive         bool           `json:"is_hack_active"`
	HackChallenge        *HackChallenge `json:"hack_challenge,omitempty"`
	HackStartedAt        time.Time      `json:"hack_started_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Roster returns the roster slice for a side.
func (s *BattleState) Roster(side Side) []BattlePokemon {
	if side == Team1 {
		return s.Team1
	}
	return s.Team2
}

// ActiveIndex returns the active roster index for a side, -1 when the side
// has nobody left.
func (s *BattleState) ActiveIndex(side Side) int {
	if side == Team1 {
		return s.Active1
	}
	return s.Active2
}

// SetActiveIndex points a side's active slot at idx (-1 clears it).
func (s *BattleState) SetActiveIndex(side Side, idx int) {
	if side == Team1 {
		s.Active1 = idx
		return
	}
	s.Active2 = idx
}

// Active returns the active combatant for a side or nil.
func (s *BattleState) Active(side Side) *BattlePokemon {
	roster := s.Roster(side)
	idx := s.ActiveIndex(side)
	if idx < 0 || idx >= len(roster) {
		return nil
	}
	return &roster[idx]
}

// Log appends an action to the narrative.
func (s *BattleState) Log(a TurnAction) { s.Actions = append(s.Actions, a) }

// Finished reports whether the battle reached its terminal phase.
func (s *BattleState) Finished() bool { return s.Phase == PhaseFinished }

// Clone returns a deep copy safe to hand to readers.
func (s *BattleState) Clone() *BattleState {
	if s == nil {
		return nil
	}
	out := *s
	out.Team1 = append([]BattlePokemon(nil), s.Team1...)
	out.Team2 = append([]BattlePokemon(nil), s.Team2...)
	out.AvailableMoves = append([]PokemonMove(nil), s.AvailableMoves...)
	out.Actions = make([]TurnAction, len(s.Actions))
	for i, a := range s.Actions {
		out.Actions[i] = a.clone()
	}
	if s.HackChallenge != nil {
		hc := *s.HackChallenge
		out.HackChallenge = &hc
	}
	return &out
}

func (a TurnAction) clone() TurnAction {
	out := a
	if a.Attacker != nil {
		v := *a.Attacker
		out.Attacker = &v
	}
	if a.Defender != nil {
		v := *a.Defender
		out.Defender = &v
	}
	if a.Move != nil {
		v := *a.Move
		out.Move = &v
	}
	return out
}
