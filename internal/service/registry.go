package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/engine"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/hack"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"
)

// ResultRecorder persists finished battles.
type ResultRecorder interface {
	RecordBattle(st *game.BattleState, mode game.BattleMode, forfeited bool) error
}

// Options configures a Registry. Zero durations and counts fall back to
// defaults; HackProbability is used as given.
type Options struct {
	TTL              time.Duration
	EvictionInterval time.Duration
	MaxTurns         int
	WeatherTurns     int
	HackProbability  float64
	HackTimeLimit    time.Duration

	Rand      engine.Rand
	Moves     engine.MoveRepository
	Generator hack.ChallengeGenerator
	Verifier  hack.ChallengeVerifier
	Recorder  ResultRecorder
	Hub       *Hub
	Now       func() time.Time
}

const (
	defaultTTL              = 10 * time.Minute
	defaultEvictionInterval = 30 * time.Second
)

// InitRequest describes a new interactive battle. Team1 belongs to the
// player, Team2 to the AI.
type InitRequest struct {
	PlayerID  string
	Team1     []game.RosterEntry
	Team2     []game.RosterEntry
	Weather   string
	TimeBonus float64
}

// SimulateRequest describes a battle played out by the AI on both sides.
type SimulateRequest struct {
	PlayerID  string
	Team1     []game.RosterEntry
	Team2     []game.RosterEntry
	Weather   string
	TimeBonus float64
	MaxTurns  int
}

// Registry owns the live interactive sessions. Sessions are looked up under
// a read lock and mutated under their own mutex, so different battles
// proceed in parallel.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl          time.Duration
	interval     time.Duration
	maxTurns     int
	weatherTurns int
	deps         sessionDeps
	recorder     ResultRecorder
	hub          *Hub
}

func NewRegistry(opts Options) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.EvictionInterval <= 0 {
		opts.EvictionInterval = defaultEvictionInterval
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = engine.DefaultMaxTurns
	}
	if opts.WeatherTurns <= 0 {
		opts.WeatherTurns = engine.DefaultWeatherTurns
	}
	if opts.Rand == nil {
		opts.Rand = engine.NewLockedRand(time.Now().UnixNano())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Generator == nil {
		opts.Generator = hack.NewCipherGenerator(opts.Rand, opts.HackTimeLimit)
	}
	if opts.Verifier == nil {
		opts.Verifier = hack.Verifier{}
	}
	return &Registry{
		sessions:     make(map[string]*Session),
		ttl:          opts.TTL,
		interval:     opts.EvictionInterval,
		maxTurns:     opts.MaxTurns,
		weatherTurns: opts.WeatherTurns,
		recorder:     opts.Recorder,
		hub:          opts.Hub,
		deps: sessionDeps{
			resolver: engine.NewResolver(opts.Rand),
			rng:      opts.Rand,
			moves:    opts.Moves,
			injector: hack.NewInjector(opts.Rand, opts.HackProbability, opts.Generator),
			verifier: opts.Verifier,
			now:      opts.Now,
		},
	}
}

// InitializeBattle creates and registers a new interactive session.
func (r *Registry) InitializeBattle(req InitRequest) (*game.BattleState, error) {
	sess, err := newSession(engine.BattleSetup{
		BattleID:     uuid.NewString(),
		Team1:        req.Team1,
		Team2:        req.Team2,
		Weather:      req.Weather,
		WeatherTurns: r.weatherTurns,
		TimeBonus:    req.TimeBonus,
	}, req.PlayerID, r.ttl, r.deps)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[sess.ID()] = sess
	r.mu.Unlock()

	st := sess.Snapshot()
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: st.BattleID,
		constants.LogFieldPlayer:   req.PlayerID,
		constants.LogFieldMode:     game.ModeInteractive,
	})
	r.afterMutation(sess, st)
	return st, nil
}

// SubmitMove plays the player's move in battleID.
func (r *Registry) SubmitMove(battleID string, moveIndex int, userID string) (*game.BattleState, error) {
	sess, err := r.lookup(battleID)
	if err != nil {
		return nil, err
	}
	st, err := sess.SubmitMove(moveIndex, userID)
	if err != nil {
		return nil, err
	}
	if st.IsHackActive {
		logging.Info("hack challenge triggered", logging.Fields{
			constants.LogFieldBattleID: battleID,
			constants.LogFieldTurn:     st.Turn,
		})
	}
	r.afterMutation(sess, st)
	return st, nil
}

// SubmitHackAnswer answers the active challenge in battleID.
func (r *Registry) SubmitHackAnswer(battleID, answer, userID string) (HackResult, *game.BattleState, error) {
	sess, err := r.lookup(battleID)
	if err != nil {
		return HackResult{}, nil, err
	}
	res, st, err := sess.SubmitHackAnswer(answer, userID)
	if err != nil {
		return HackResult{}, nil, err
	}
	r.afterMutation(sess, st)
	return res, st, nil
}

// Forfeit concedes battleID for userID.
func (r *Registry) Forfeit(battleID, userID string) (*game.BattleState, error) {
	sess, err := r.lookup(battleID)
	if err != nil {
		return nil, err
	}
	st, err := sess.Forfeit(userID)
	if err != nil {
		return nil, err
	}
	r.afterMutation(sess, st)
	return st, nil
}

// State returns a snapshot of battleID.
func (r *Registry) State(battleID string) (*game.BattleState, error) {
	sess, err := r.lookup(battleID)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

// SimulateFullBattle plays a battle to completion without registering it.
func (r *Registry) SimulateFullBattle(req SimulateRequest) (*game.BattleState, error) {
	if len(req.Team1) == 0 || len(req.Team2) == 0 {
		return nil, ErrEmptyRoster
	}
	maxTurns := req.MaxTurns
	if maxTurns <= 0 || maxTurns > r.maxTurns {
		maxTurns = r.maxTurns
	}
	now := r.deps.now()
	timeBonus := req.TimeBonus
	if timeBonus <= 0 {
		timeBonus = engine.TimeBonus(now)
	}
	st := engine.Simulate(engine.SimulateInput{
		BattleSetup: engine.BattleSetup{
			BattleID:     uuid.NewString(),
			Team1:        req.Team1,
			Team2:        req.Team2,
			Weather:      req.Weather,
			WeatherTurns: r.weatherTurns,
			TimeBonus:    timeBonus,
		},
		MaxTurns: maxTurns,
	}, r.deps.moves, r.deps.rng)
	st.PlayerID = req.PlayerID
	st.CreatedAt = now
	st.ExpiresAt = now

	logging.Info("battle simulated", logging.Fields{
		constants.LogFieldBattleID: st.BattleID,
		constants.LogFieldWinner:   st.Winner,
		constants.LogFieldTurn:     st.Turn,
		constants.LogFieldMode:     game.ModeSimulated,
	})
	r.record(st, game.ModeSimulated, false)
	return st, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Run evicts expired sessions every eviction interval until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictExpired(r.deps.now()); n > 0 {
				logging.Info("evicted expired battles", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}
}

// EvictExpired removes every session whose TTL ran out by now.
func (r *Registry) EvictExpired(now time.Time) int {
	r.mu.Lock()
	var expired []string
	for id, sess := range r.sessions {
		if sess.Expired(now) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()
	for _, id := range expired {
		r.closeStream(id)
		logging.Debug("battle evicted", logging.Fields{constants.LogFieldBattleID: id})
	}
	return len(expired)
}

// lookup returns a live session, expiring it lazily when its TTL ran out.
func (r *Registry) lookup(battleID string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[battleID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrBattleNotFound
	}
	if sess.Expired(r.deps.now()) {
		r.mu.Lock()
		if cur, ok := r.sessions[battleID]; ok && cur == sess {
			delete(r.sessions, battleID)
		}
		r.mu.Unlock()
		r.closeStream(battleID)
		return nil, ErrBattleNotFound
	}
	return sess, nil
}

func (r *Registry) afterMutation(sess *Session, st *game.BattleState) {
	if r.hub != nil {
		r.hub.Publish(st)
	}
	final, forfeited, ok := sess.takeResult()
	if !ok {
		return
	}
	logging.Info("battle finished", logging.Fields{
		constants.LogFieldBattleID: final.BattleID,
		constants.LogFieldWinner:   final.Winner,
		constants.LogFieldTurn:     final.Turn,
		constants.LogFieldPlayer:   final.PlayerID,
	})
	r.record(final, game.ModeInteractive, forfeited)
}

func (r *Registry) record(st *game.BattleState, mode game.BattleMode, forfeited bool) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.RecordBattle(st, mode, forfeited); err != nil {
		logging.Error("failed to record battle result", err, logging.Fields{constants.LogFieldBattleID: st.BattleID})
	}
}

func (r *Registry) closeStream(battleID string) {
	if r.hub != nil {
		r.hub.Close(battleID)
	}
}
