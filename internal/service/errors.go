package service

import "errors"

var (
	ErrBattleNotFound = errors.New("battle not found")

	ErrNotYourTurn       = errors.New("not your turn")
	ErrInvalidMoveIndex  = errors.New("invalid move index")
	ErrNoActiveChallenge = errors.New("no active hack challenge")
	ErrBattleFinished    = errors.New("battle already finished")
	ErrChallengeActive   = errors.New("a hack challenge must be answered first")
	ErrNotParticipant    = errors.New("player not part of this battle")
	ErrEmptyRoster       = errors.New("both rosters need at least one pokemon")
	ErrInvalidRoster     = errors.New("roster references unknown species")
)

var validationErrors = []error{
	ErrNotYourTurn,
	ErrInvalidMoveIndex,
	ErrNoActiveChallenge,
	ErrBattleFinished,
	ErrChallengeActive,
	ErrNotParticipant,
	ErrEmptyRoster,
	ErrInvalidRoster,
}

// IsNotFound reports whether err means the battle does not exist or expired.
func IsNotFound(err error) bool { return errors.Is(err, ErrBattleNotFound) }

// IsValidation reports whether err is a rejected request against a live
// battle.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
