package storage

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"gorm.io/gorm"
)

type mockRepo struct {
	mu        sync.Mutex
	species   map[uint]game.Species
	moves     map[uint][]game.Move
	moveCalls atomic.Int32
	moveErr   error
	gate      chan struct{}
	records   []*game.BattleRecord
	stats     map[string]*game.User
}

func (m *mockRepo) ListSpecies() ([]game.Species, error) { return nil, nil }

func (m *mockRepo) GetSpeciesByIDs(ids []uint) ([]game.Species, error) {
	var out []game.Species
	for _, id := range ids {
		if s, ok := m.species[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepo) MovesFor(id uint) ([]game.Move, error) {
	m.moveCalls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	if m.moveErr != nil {
		return nil, m.moveErr
	}
	return m.moves[id], nil
}

func (m *mockRepo) SaveBattleRecord(rec *game.BattleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(email string, winner game.Winner, forfeited bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		m.stats = map[string]*game.User{}
	}
	u, ok := m.stats[email]
	if !ok {
		u = &game.User{Email: email}
		m.stats[email] = u
	}
	u.BattlesPlayed++
	switch {
	case forfeited:
		u.Forfeits++
	case winner == game.WinnerTeam1:
		u.Wins++
	default:
		u.Losses++
	}
	return nil
}

func (m *mockRepo) GetStatsByEmail(email string) (*game.User, error) { return m.stats[email], nil }
func (m *mockRepo) UpsertUser(email, name string) error             { return nil }
func (m *mockRepo) GetTopPlayers(limit int) ([]game.User, error)    { return nil, nil }

func species(id uint, name, typ string) game.Species {
	return game.Species{Model: gorm.Model{ID: id}, Name: name, Type: typ, BaseHP: 35, BaseAttack: 55, BaseDefense: 40, BaseSpeed: 90}
}

func TestCachedMoves_LoadsOnce(t *testing.T) {
	repo := &mockRepo{moves: map[uint][]game.Move{
		25: {{Name: "thunder-shock", Type: "electric", Power: 40, Accuracy: 100, Category: "special"}},
	}}
	c := NewCachedMoves(repo)
	for i := 0; i < 3; i++ {
		got := c.MovesFor(25)
		if len(got) != 1 || got[0].Type != game.Electric || got[0].Category != game.CategorySpecial {
			t.Fatalf("unexpected moves %+v", got)
		}
	}
	if n := repo.moveCalls.Load(); n != 1 {
		t.Fatalf("expected a single load, got %d", n)
	}
	c.Invalidate()
	c.MovesFor(25)
	if n := repo.moveCalls.Load(); n != 2 {
		t.Fatalf("expected reload after invalidate, got %d", n)
	}
}

func TestCachedMoves_ConcurrentMissesShareLoad(t *testing.T) {
	repo := &mockRepo{moves: map[uint][]game.Move{7: {{Name: "bubble", Type: "water", Power: 20}}}, gate: make(chan struct{})}
	c := NewCachedMoves(repo)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.MovesFor(7)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(repo.gate)
	wg.Wait()
	if n := repo.moveCalls.Load(); n != 1 {
		t.Fatalf("expected concurrent callers to share one load, got %d", n)
	}
}

func TestCachedMoves_ErrorsYieldEmptyList(t *testing.T) {
	repo := &mockRepo{moveErr: errors.New("db down")}
	if got := NewCachedMoves(repo).MovesFor(99); len(got) != 0 {
		t.Fatalf("expected empty list on error, got %+v", got)
	}
}

func TestRosterProvider_KeepsOrder(t *testing.T) {
	repo := &mockRepo{species: map[uint]game.Species{
		1: species(1, "pikachu", "electric"),
		2: species(2, "geodude", "rock"),
	}}
	entries, err := NewRosterProvider(repo).Roster([]RosterRequest{{SpeciesID: 2, Level: 30}, {SpeciesID: 1}, {SpeciesID: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 || entries[0].Name != "geodude" || entries[1].Name != "pikachu" || entries[2].Name != "geodude" {
		t.Fatalf("unexpected roster %+v", entries)
	}
	if entries[0].Level != 30 || entries[1].Type != game.Electric || entries[1].Base.Speed != 90 {
		t.Fatalf("unexpected entry data %+v", entries)
	}
}

func TestRosterProvider_Rejects(t *testing.T) {
	repo := &mockRepo{species: map[uint]game.Species{1: species(1, "pikachu", "electric")}}
	p := NewRosterProvider(repo)
	if _, err := p.Roster([]RosterRequest{{SpeciesID: 42}}); !errors.Is(err, ErrUnknownSpecies) {
		t.Fatalf("expected ErrUnknownSpecies, got %v", err)
	}
	if _, err := p.Roster([]RosterRequest{{SpeciesID: 1, Level: 101}}); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestBattleRecorder(t *testing.T) {
	repo := &mockRepo{}
	rec := NewBattleRecorder(repo)
	st := &game.BattleState{BattleID: "b1", PlayerID: "misty@example.com", Winner: game.WinnerTeam1, Turn: 4, Actions: make([]game.TurnAction, 9)}
	if err := rec.RecordBattle(st, game.ModeInteractive, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rec.RecordBattle(&game.BattleState{BattleID: "b2", PlayerID: "misty@example.com", Winner: game.WinnerTeam2}, game.ModeSimulated, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.records) != 2 || repo.records[0].ActionCount != 9 || repo.records[0].Mode != "interactive" {
		t.Fatalf("unexpected records %+v", repo.records)
	}
	u := repo.stats["misty@example.com"]
	if u == nil || u.BattlesPlayed != 1 || u.Wins != 1 {
		t.Fatalf("only interactive battles update stats, got %+v", u)
	}
}
