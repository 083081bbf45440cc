package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"
	"github.com/yananas974/PokemonBattle-sub000/internal/service"
	"github.com/yananas974/PokemonBattle-sub000/internal/storage"
)

type CreateBattleRequest struct {
	Team1     []storage.RosterRequest `json:"team1"`
	Team2     []storage.RosterRequest `json:"team2"`
	Weather   string                  `json:"weather"`
	TimeBonus float64                 `json:"time_bonus"`
}

type SimulateBattleRequest struct {
	CreateBattleRequest
	MaxTurns int `json:"max_turns"`
}

type MoveRequest struct {
	MoveIndex *int `json:"move_index"`
}

type HackAnswerRequest struct {
	Answer string `json:"answer"`
}

// CreateBattle starts an interactive battle for the session user.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	team1, team2, ok := h.resolveRosters(c, req.Team1, req.Team2)
	if !ok {
		return
	}
	st, err := h.registry.InitializeBattle(service.InitRequest{
		PlayerID:  sessionEmail(c),
		Team1:     team1,
		Team2:     team2,
		Weather:   req.Weather,
		TimeBonus: req.TimeBonus,
	})
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// GetBattle returns the current state of a battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	st, err := h.registry.State(c.Param("battleID"))
	if err != nil {
		writeServiceError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.JSON(http.StatusOK, st)
}

// SubmitMove plays the player's chosen move for the current turn.
func (h *BattleHandler) SubmitMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MoveIndex == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	st, err := h.registry.SubmitMove(c.Param("battleID"), *req.MoveIndex, sessionEmail(c))
	if err != nil {
		writeServiceError(c, err, constants.ErrInvalidRequest)
		return
	}
	c.JSON(http.StatusOK, st)
}

// SubmitHackAnswer answers the active hack challenge.
func (h *BattleHandler) SubmitHackAnswer(c *gin.Context) {
	var req HackAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, st, err := h.registry.SubmitHackAnswer(c.Param("battleID"), req.Answer, sessionEmail(c))
	if err != nil {
		writeServiceError(c, err, constants.ErrInvalidRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyCorrect: res.Correct,
		constants.JSONKeyExpired: res.Expired,
		constants.JSONKeyMessage: res.Message,
		constants.JSONKeyState:   st,
	})
}

// Forfeit concedes the battle.
func (h *BattleHandler) Forfeit(c *gin.Context) {
	st, err := h.registry.Forfeit(c.Param("battleID"), sessionEmail(c))
	if err != nil {
		writeServiceError(c, err, constants.ErrInvalidRequest)
		return
	}
	c.JSON(http.StatusOK, st)
}

// SimulateBattle plays a battle to completion and returns the full log.
func (h *BattleHandler) SimulateBattle(c *gin.Context) {
	var req SimulateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	team1, team2, ok := h.resolveRosters(c, req.Team1, req.Team2)
	if !ok {
		return
	}
	st, err := h.registry.SimulateFullBattle(service.SimulateRequest{
		PlayerID:  sessionEmail(c),
		Team1:     team1,
		Team2:     team2,
		Weather:   req.Weather,
		TimeBonus: req.TimeBonus,
		MaxTurns:  req.MaxTurns,
	})
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedSimulateBattle)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *BattleHandler) resolveRosters(c *gin.Context, r1, r2 []storage.RosterRequest) ([]game.RosterEntry, []game.RosterEntry, bool) {
	if len(r1) == 0 || len(r2) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmptyRoster})
		return nil, nil, false
	}
	team1, err := h.rosters.Roster(r1)
	if err == nil {
		var team2 []game.RosterEntry
		team2, err = h.rosters.Roster(r2)
		if err == nil {
			return team1, team2, true
		}
	}
	if errors.Is(err, storage.ErrUnknownSpecies) || errors.Is(err, storage.ErrInvalidLevel) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoster, constants.JSONKeyDetails: err.Error()})
		return nil, nil, false
	}
	logging.Error("failed to resolve roster", err, nil)
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSpecies})
	return nil, nil, false
}

var serviceErrorMessages = map[error]struct {
	status int
	msg    string
}{
	service.ErrBattleNotFound:    {http.StatusNotFound, constants.ErrBattleNotFound},
	service.ErrNotYourTurn:       {http.StatusConflict, constants.ErrNotYourTurn},
	service.ErrInvalidMoveIndex:  {http.StatusBadRequest, constants.ErrInvalidMoveIndex},
	service.ErrNoActiveChallenge: {http.StatusConflict, constants.ErrNoActiveChallenge},
	service.ErrBattleFinished:    {http.StatusConflict, constants.ErrBattleFinished},
	service.ErrChallengeActive:   {http.StatusConflict, constants.ErrChallengeActive},
	service.ErrNotParticipant:    {http.StatusForbidden, constants.ErrNotParticipant},
	service.ErrEmptyRoster:       {http.StatusBadRequest, constants.ErrEmptyRoster},
	service.ErrInvalidRoster:     {http.StatusBadRequest, constants.ErrInvalidRoster},
}

// writeServiceError maps service sentinels to HTTP responses. Unknown
// errors become 500 with fallback as the message.
func writeServiceError(c *gin.Context, err error, fallback string) {
	for sentinel, m := range serviceErrorMessages {
		if errors.Is(err, sentinel) {
			c.JSON(m.status, gin.H{constants.JSONKeyError: m.msg})
			return
		}
	}
	logging.Error("battle request failed", err, logging.Fields{constants.LogFieldBattleID: c.Param("battleID")})
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
}
