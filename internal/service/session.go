package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/engine"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/hack"
)

// sessionDeps are the collaborators shared by every session of a registry.
type sessionDeps struct {
	resolver *engine.Resolver
	rng      engine.Rand
	moves    engine.MoveRepository
	injector *hack.Injector
	verifier hack.ChallengeVerifier
	now      func() time.Time
}

// HackResult is the outcome of one answer to a hack challenge.
type HackResult struct {
	Correct bool   `json:"correct"`
	Expired bool   `json:"expired"`
	Message string `json:"message"`
}

// Session is one interactive battle. All mutations happen under mu; readers
// get deep copies from Snapshot.
type Session struct {
	mu        sync.Mutex
	st        *game.BattleState
	deps      sessionDeps
	forfeited bool
	recorded  bool
}

// newSession prepares both rosters and puts the battle into its first turn.
func newSession(setup engine.BattleSetup, playerID string, ttl time.Duration, deps sessionDeps) (*Session, error) {
	if len(setup.Team1) == 0 || len(setup.Team2) == 0 {
		return nil, ErrEmptyRoster
	}
	now := deps.now()
	if setup.TimeBonus <= 0 {
		setup.TimeBonus = engine.TimeBonus(now)
	}
	st := engine.NewBattleState(setup)
	st.Phase = game.PhaseSetup
	st.PlayerID = playerID
	st.CreatedAt = now
	st.ExpiresAt = now.Add(ttl)

	s := &Session{st: st, deps: deps}
	if engine.UpdateWinner(st) != game.WinnerNone {
		// every member of a roster was already fainted
		return s, nil
	}
	st.Phase = game.PhaseBattle
	s.armPlayerTurn()
	return s, nil
}

// ID returns the battle id.
func (s *Session) ID() string { return s.st.BattleID }

// Snapshot returns a deep copy of the battle state.
func (s *Session) Snapshot() *game.BattleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

// Expired reports whether the session outlived its TTL.
func (s *Session) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.st.ExpiresAt.IsZero() && now.After(s.st.ExpiresAt)
}

// SubmitMove plays one full turn with the player's chosen move against the
// AI's random pick.
func (s *Session) SubmitMove(moveIndex int, userID string) (*game.BattleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	if err := s.checkPlayer(userID); err != nil {
		return nil, err
	}
	if st.IsHackActive {
		return nil, ErrChallengeActive
	}
	if !st.WaitingForPlayerMove || !st.IsPlayerTurn {
		return nil, ErrNotYourTurn
	}
	if moveIndex < 0 || moveIndex >= len(st.AvailableMoves) {
		return nil, ErrInvalidMoveIndex
	}

	playerMove := st.AvailableMoves[moveIndex]
	st.WaitingForPlayerMove = false
	engine.PlayTurn(st, s.deps.resolver, func(side game.Side, p *game.BattlePokemon) game.PokemonMove {
		if side == game.Team1 {
			return playerMove
		}
		return engine.PickMove(s.deps.rng, s.movesFor(p))
	})
	engine.ApplyEndOfTurnWeather(st)
	if engine.UpdateWinner(st) != game.WinnerNone {
		return st.Clone(), nil
	}

	if st.IsPlayerTurn && s.deps.injector != nil && s.deps.injector.Trigger(st, s.deps.now()) {
		return st.Clone(), nil
	}
	s.nextTurn()
	return st.Clone(), nil
}

// SubmitHackAnswer resolves or retries the active challenge. A wrong answer
// within the time limit leaves the challenge open.
func (s *Session) SubmitHackAnswer(answer, userID string) (HackResult, *game.BattleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	if err := s.checkPlayer(userID); err != nil {
		return HackResult{}, nil, err
	}
	if !st.IsHackActive || st.HackChallenge == nil {
		return HackResult{}, nil, ErrNoActiveChallenge
	}

	var res HackResult
	switch {
	case hack.Expired(st, s.deps.now()):
		res = HackResult{Expired: true, Message: "Time is up! Your pokemon takes a penalty."}
		hack.ApplyPenalty(st)
	case s.deps.verifier != nil && s.deps.verifier.Verify(st.HackChallenge, answer):
		res = HackResult{Correct: true, Message: "Access granted! Your pokemon's attack rises."}
		hack.ApplyBonus(st)
	default:
		return HackResult{Message: "Access denied. Try again before time runs out."}, st.Clone(), nil
	}

	if engine.UpdateWinner(st) == game.WinnerNone {
		s.nextTurn()
	}
	return res, st.Clone(), nil
}

// Forfeit ends the battle in favour of the player's opponent.
func (s *Session) Forfeit(userID string) (*game.BattleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	if err := s.checkPlayer(userID); err != nil {
		return nil, err
	}
	side := game.Team1
	st.Log(game.TurnAction{
		Turn:              st.Turn,
		Phase:             game.ActionForfeit,
		Attacker:          st.Active(side).Snapshot(),
		TypeEffectiveness: 1,
		WeatherBonus:      1,
		Description:       fmt.Sprintf("%s forfeited the battle.", engine.SideLabel(side)),
	})
	st.IsHackActive = false
	st.HackChallenge = nil
	engine.Finish(st, game.WinnerFor(side.Opponent()))
	s.forfeited = true
	return st.Clone(), nil
}

func (s *Session) checkPlayer(userID string) error {
	if s.st.Finished() {
		return ErrBattleFinished
	}
	if s.st.PlayerID != "" && userID != s.st.PlayerID {
		return ErrNotParticipant
	}
	return nil
}

// nextTurn advances the clock and re-arms the player's move selection.
func (s *Session) nextTurn() {
	engine.AdvanceTurn(s.st)
	s.armPlayerTurn()
}

func (s *Session) armPlayerTurn() {
	s.st.IsPlayerTurn = true
	s.st.WaitingForPlayerMove = true
	s.st.AvailableMoves = engine.MovesOrFallback(s.movesFor(s.st.Active(game.Team1)))
}

func (s *Session) movesFor(p *game.BattlePokemon) []game.PokemonMove {
	if p == nil || s.deps.moves == nil {
		return nil
	}
	return s.deps.moves.MovesFor(p.PokemonID)
}

// takeResult returns the final state once, when the battle has finished and
// was not reported yet.
func (s *Session) takeResult() (*game.BattleState, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.st.Finished() || s.recorded {
		return nil, false, false
	}
	s.recorded = true
	return s.st.Clone(), s.forfeited, true
}
