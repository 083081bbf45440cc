package hack

import (
	"strings"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// Verifier accepts answers that match the solution ignoring case and
// surrounding whitespace.
type Verifier struct{}

// Verify implements ChallengeVerifier.
func (Verifier) Verify(ch *game.HackChallenge, answer string) bool {
	if ch == nil || ch.Solution == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(ch.Solution))
}
