package hack

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yananas974/PokemonBattle-sub000/internal/engine"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// Supported cipher algorithms.
const (
	AlgorithmCaesar  = "caesar"
	AlgorithmReverse = "reverse"
	AlgorithmBase64  = "base64"
	AlgorithmHex     = "hex"
	AlgorithmAtbash  = "atbash"
)

var defaultWords = []string{
	"pikachu", "pokeball", "thunder", "firewall", "encrypt", "trainer",
	"badge", "potion", "evolve", "gateway", "kernel", "payload",
}

type cipher struct {
	difficulty string
	hint       func(shift int) string
	encode     func(plain string, shift int) string
}

var ciphers = map[string]cipher{
	AlgorithmReverse: {
		difficulty: "easy",
		hint:       func(int) string { return "Read it backwards." },
		encode:     func(p string, _ int) string { return reverse(p) },
	},
	AlgorithmCaesar: {
		difficulty: "medium",
		hint:       func(s int) string { return fmt.Sprintf("Each letter was shifted forward by %d.", s) },
		encode:     caesar,
	},
	AlgorithmAtbash: {
		difficulty: "medium",
		hint:       func(int) string { return "The alphabet was mirrored: a<->z, b<->y." },
		encode:     func(p string, _ int) string { return atbash(p) },
	},
	AlgorithmBase64: {
		difficulty: "hard",
		hint:       func(int) string { return "Standard base64 encoding." },
		encode:     func(p string, _ int) string { return base64.StdEncoding.EncodeToString([]byte(p)) },
	},
	AlgorithmHex: {
		difficulty: "hard",
		hint:       func(int) string { return "Each byte is written as two hex digits." },
		encode:     func(p string, _ int) string { return hex.EncodeToString([]byte(p)) },
	},
}

var algorithmOrder = []string{AlgorithmReverse, AlgorithmCaesar, AlgorithmAtbash, AlgorithmBase64, AlgorithmHex}

// CipherGenerator builds challenges by encrypting a random word.
type CipherGenerator struct {
	rng       engine.Rand
	words     []string
	timeLimit time.Duration
}

func NewCipherGenerator(rng engine.Rand, timeLimit time.Duration, words ...string) *CipherGenerator {
	if len(words) == 0 {
		words = defaultWords
	}
	if timeLimit <= 0 {
		timeLimit = 30 * time.Second
	}
	return &CipherGenerator{rng: rng, words: words, timeLimit: timeLimit}
}

// Generate implements ChallengeGenerator.
func (g *CipherGenerator) Generate() *game.HackChallenge {
	word := strings.ToLower(g.words[g.rng.Intn(len(g.words))])
	alg := algorithmOrder[g.rng.Intn(len(algorithmOrder))]
	shift := 1 + g.rng.Intn(25)
	c := ciphers[alg]
	return &game.HackChallenge{
		ID:            uuid.NewString(),
		EncryptedText: c.encode(word, shift),
		Solution:      word,
		Algorithm:     alg,
		Difficulty:    c.difficulty,
		Hint:          c.hint(shift),
		TimeLimit:     int(g.timeLimit / time.Second),
	}
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func caesar(s string, shift int) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+rune(shift))%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+rune(shift))%26
		}
		return r
	}, s)
}

func atbash(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'z' - (r - 'a')
		case r >= 'A' && r <= 'Z':
			return 'Z' - (r - 'A')
		}
		return r
	}, s)
}
