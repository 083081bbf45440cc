package hack

import (
	"fmt"
	"math"
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/engine"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// Outcome multipliers for a resolved challenge.
const (
	BonusAttackPercent = 15
	PenaltyHPFraction  = 0.20
)

// ChallengeGenerator produces a new puzzle, or nil when none is available.
type ChallengeGenerator interface {
	Generate() *game.HackChallenge
}

// ChallengeVerifier checks a player's answer against a challenge.
type ChallengeVerifier interface {
	Verify(ch *game.HackChallenge, answer string) bool
}

// Injector decides when a challenge interrupts the player and applies its
// outcome to the battle.
type Injector struct {
	rng         engine.Rand
	probability float64
	gen         ChallengeGenerator
}

func NewInjector(rng engine.Rand, probability float64, gen ChallengeGenerator) *Injector {
	return &Injector{rng: rng, probability: probability, gen: gen}
}

// ShouldTrigger returns true with the configured probability.
func (i *Injector) ShouldTrigger() bool {
	return i.rng.Float64() < i.probability
}

// Trigger rolls for a challenge and, on success, puts the battle into the
// hack sub-state. The player keeps the turn so the client stays responsive.
// It reports whether a challenge started.
func (i *Injector) Trigger(st *game.BattleState, now time.Time) bool {
	if st.IsHackActive || !i.ShouldTrigger() || i.gen == nil {
		return false
	}
	ch := i.gen.Generate()
	if ch == nil {
		return false
	}
	st.IsHackActive = true
	st.HackChallenge = ch
	st.HackStartedAt = now
	st.Log(game.TurnAction{
		Turn:              st.Turn,
		Phase:             game.ActionHackTrigger,
		Attacker:          st.Active(game.Team1).Snapshot(),
		TypeEffectiveness: 1,
		WeatherBonus:      1,
		Description: fmt.Sprintf("A hack challenge appeared! Decrypt the %s message within %d seconds.",
			ch.Algorithm, ch.TimeLimit),
	})
	return true
}

// Expired reports whether the active challenge ran past its time limit.
func Expired(st *game.BattleState, now time.Time) bool {
	if st.HackChallenge == nil {
		return false
	}
	limit := time.Duration(st.HackChallenge.TimeLimit) * time.Second
	return now.Sub(st.HackStartedAt) > limit
}

// ApplyBonus raises the player's active attack by 15% and ends the
// challenge.
func ApplyBonus(st *game.BattleState) {
	p := st.Active(game.Team1)
	action := game.TurnAction{
		Turn:              st.Turn,
		Phase:             game.ActionHackBonus,
		TypeEffectiveness: 1,
		WeatherBonus:      1,
		Accuracy:          true,
		Description:       "Hack succeeded, but nobody was left to power up.",
	}
	if p != nil {
		gain := int(math.Floor(float64(p.EffectiveAttack) * BonusAttackPercent / 100))
		p.EffectiveAttack += gain
		action.Attacker = p.Snapshot()
		action.RemainingHP = p.CurrentHP
		action.Description = fmt.Sprintf("Hack succeeded! %s's attack rose by %d to %d.", engine.DisplayName(p.Name), gain, p.EffectiveAttack)
	}
	st.Log(action)
	endChallenge(st)
}

// ApplyPenalty removes 20% of the player's active current HP and ends the
// challenge. A knocked out pokemon is switched out.
func ApplyPenalty(st *game.BattleState) {
	p := st.Active(game.Team1)
	action := game.TurnAction{
		Turn:              st.Turn,
		Phase:             game.ActionHackPenalty,
		TypeEffectiveness: 1,
		WeatherBonus:      1,
		Accuracy:          true,
		Description:       "Hack failed.",
	}
	if p != nil {
		lost := p.ApplyHPPenalty(PenaltyHPFraction)
		action.Defender = p.Snapshot()
		action.Damage = lost
		action.RemainingHP = p.CurrentHP
		action.IsKO = p.IsKO
		action.Description = fmt.Sprintf("Hack failed! %s lost %d HP.", engine.DisplayName(p.Name), lost)
	}
	st.Log(action)
	if p != nil && p.IsKO {
		engine.SwitchIn(st, game.Team1)
	}
	endChallenge(st)
}

func endChallenge(st *game.BattleState) {
	st.IsHackActive = false
	st.HackChallenge = nil
	st.HackStartedAt = time.Time{}
}
