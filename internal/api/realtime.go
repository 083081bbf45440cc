package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// StreamBattle upgrades to a websocket and pushes a state snapshot after
// every change to the battle. The stream ends when the battle is evicted
// or the client disconnects.
func (h *BattleHandler) StreamBattle(c *gin.Context) {
	battleID := c.Param("battleID")
	st, err := h.registry.State(battleID)
	if err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	if email := sessionEmail(c); st.PlayerID != "" && email != st.PlayerID {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotParticipant})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn(constants.ErrFailedUpgrade, err, logging.Fields{constants.LogFieldBattleID: battleID})
		return
	}
	defer conn.Close()

	updates, cancel := h.hub.Subscribe(battleID)
	defer cancel()

	// reader: only needed to process pongs and notice the client leaving
	done := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(st); err != nil {
		return
	}

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case next, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "battle closed"))
				return
			}
			if err := conn.WriteJSON(next); err != nil {
				logging.Debug("stream write failed", logging.Fields{constants.LogFieldBattleID: battleID, "error": err.Error()})
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
