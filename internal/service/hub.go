package service

import (
	"sync"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

const subscriberBuffer = 8

// Hub fans battle snapshots out to live subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan *game.BattleState]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan *game.BattleState]struct{})}
}

// Subscribe registers a listener for battleID. The returned cancel func
// must be called once the listener is done.
func (h *Hub) Subscribe(battleID string) (<-chan *game.BattleState, func()) {
	ch := make(chan *game.BattleState, subscriberBuffer)
	h.mu.Lock()
	if h.subs[battleID] == nil {
		h.subs[battleID] = make(map[chan *game.BattleState]struct{})
	}
	h.subs[battleID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[battleID]; ok {
				if _, live := set[ch]; live {
					delete(set, ch)
					close(ch)
				}
				if len(set) == 0 {
					delete(h.subs, battleID)
				}
			}
		})
	}
}

// Publish sends st to every subscriber of its battle. Slow subscribers miss
// updates rather than block the battle.
func (h *Hub) Publish(st *game.BattleState) {
	if st == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[st.BattleID] {
		select {
		case ch <- st.Clone():
		default:
		}
	}
}

// Close disconnects every subscriber of battleID.
func (h *Hub) Close(battleID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[battleID] {
		close(ch)
	}
	delete(h.subs, battleID)
}

// Subscribers returns the number of listeners on battleID.
func (h *Hub) Subscribers(battleID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[battleID])
}
