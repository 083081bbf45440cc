package storage

import (
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// BattleRecorder persists finished battles and updates the player's
// profile for interactive ones.
type BattleRecorder struct {
	repo Repository
	now  func() time.Time
}

func NewBattleRecorder(repo Repository) *BattleRecorder {
	return &BattleRecorder{repo: repo, now: time.Now}
}

func (b *BattleRecorder) RecordBattle(st *game.BattleState, mode game.BattleMode, forfeited bool) error {
	rec := &game.BattleRecord{
		ID:          st.BattleID,
		CreatedAt:   st.CreatedAt,
		Mode:        string(mode),
		PlayerEmail: st.PlayerID,
		Winner:      string(st.Winner),
		Turns:       st.Turn,
		Weather:     st.Weather.Condition,
		ActionCount: len(st.Actions),
		Forfeited:   forfeited,
		FinishedAt:  b.now(),
	}
	if err := b.repo.SaveBattleRecord(rec); err != nil {
		return err
	}
	if mode != game.ModeInteractive || st.PlayerID == "" {
		return nil
	}
	return b.repo.UpdateStatsOnBattleEnd(st.PlayerID, st.Winner, forfeited)
}
