package engine

import (
	"math"
	"strings"
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
)

// DefaultWeatherTurns is how long a weather condition lasts.
const DefaultWeatherTurns = 5

const (
	minWeatherMultiplier = 0.5
	maxWeatherMultiplier = 1.5
)

// Weather condition names.
const (
	WeatherSunny        = "sunny"
	WeatherRain         = "rain"
	WeatherSandstorm    = "sandstorm"
	WeatherSnow         = "snow"
	WeatherFog          = "fog"
	WeatherThunderstorm = "thunderstorm"
	WeatherWindy        = "windy"
)

// affinity dimensions, in vector order.
const (
	dimSolar = iota
	dimAquatic
	dimNocturnal
	dimAerial
	dimTerrestrial
	dimMystical
	dimElemental
	affinityDims
)

type affinityVector [affinityDims]float64

var typeAffinities = map[game.ElementType]affinityVector{
	game.Normal:   {0, 0, 0, 0, 0, 0, 0},
	game.Fire:     {1, -1, -0.2, 0, 0, 0, 0.6},
	game.Water:    {-0.3, 1, 0, 0, 0, 0, 0.4},
	game.Electric: {0.2, 0.3, 0, 0.3, -0.5, 0, 1},
	game.Grass:    {0.8, 0.5, -0.3, 0, 0.4, 0, 0.2},
	game.Ice:      {-0.8, 0.4, 0.3, 0.2, 0, 0, 0.5},
	game.Fighting: {0.2, 0, 0, 0, 0.3, -0.3, 0},
	game.Poison:   {-0.2, 0.2, 0.5, 0, 0.2, 0.2, 0},
	game.Ground:   {0.3, -0.7, 0, -0.6, 1, 0, 0},
	game.Flying:   {0.3, -0.2, 0, 1, -0.6, 0, 0.2},
	game.Psychic:  {0, 0, 0.2, 0, 0, 1, 0},
	game.Bug:      {0.4, -0.2, 0.2, 0.3, 0.3, 0, 0},
	game.Rock:     {0.2, -0.6, 0, -0.3, 0.9, 0, 0},
	game.Ghost:    {-0.6, 0, 1, 0.3, 0, 0.7, 0},
	game.Dragon:   {0.2, 0.2, 0, 0.5, 0.2, 0.6, 0.6},
	game.Dark:     {-0.7, 0, 1, 0, 0, 0.3, 0},
	game.Steel:    {0, -0.3, 0, 0, 0.6, 0, 0.3},
	game.Fairy:    {0.4, 0, -0.4, 0.2, 0, 1, 0},
}

type weatherEffect struct {
	description    string
	baseMultiplier float64
	effect         affinityVector
}

var weatherEffects = map[string]weatherEffect{
	WeatherSunny: {
		description:    "The sunlight is harsh.",
		baseMultiplier: 1,
		effect:         affinityVector{0.25, -0.2, -0.15, 0, 0.05, 0, 0.05},
	},
	WeatherRain: {
		description:    "Rain is falling.",
		baseMultiplier: 1,
		effect:         affinityVector{-0.15, 0.25, 0.05, -0.05, -0.1, 0, 0.05},
	},
	WeatherSandstorm: {
		description:    "A sandstorm is raging.",
		baseMultiplier: 1,
		effect:         affinityVector{0, -0.15, 0, -0.15, 0.25, 0, 0},
	},
	WeatherSnow: {
		description:    "Snow is falling.",
		baseMultiplier: 1,
		effect:         affinityVector{-0.2, 0.05, 0.05, 0, -0.05, 0, 0.1},
	},
	WeatherFog: {
		description:    "A thick fog covers the field.",
		baseMultiplier: 1,
		effect:         affinityVector{-0.1, 0.05, 0.2, -0.1, 0, 0.15, 0},
	},
	WeatherThunderstorm: {
		description:    "A thunderstorm crackles overhead.",
		baseMultiplier: 1,
		effect:         affinityVector{-0.1, 0.1, 0.05, 0.1, -0.1, 0, 0.2},
	},
	WeatherWindy: {
		description:    "Strong winds are blowing.",
		baseMultiplier: 1,
		effect:         affinityVector{0, 0, 0, 0.25, -0.05, 0, 0.05},
	},
}

var conditionAliases = map[string]string{
	"sun":   WeatherSunny,
	"sunny": WeatherSunny,
	"rainy": WeatherRain,
	"sand":  WeatherSandstorm,
	"hail":  WeatherSnow,
	"storm": WeatherThunderstorm,
	"wind":  WeatherWindy,
	"foggy": WeatherFog,
}

// normalizeCondition maps aliases to canonical names. Unknown or empty
// conditions become "".
func normalizeCondition(condition string) string {
	c := strings.ToLower(strings.TrimSpace(condition))
	if alias, ok := conditionAliases[c]; ok {
		c = alias
	}
	if _, ok := weatherEffects[c]; !ok {
		return ""
	}
	return c
}

// KnownWeather reports whether condition names a supported weather.
func KnownWeather(condition string) bool { return normalizeCondition(condition) != "" }

// WeatherMultiplier is baseMultiplier + affinity·effect, clamped to
// [0.5, 1.5]. Unknown types or conditions are neutral.
func WeatherMultiplier(t game.ElementType, condition string) float64 {
	we, ok := weatherEffects[normalizeCondition(condition)]
	if !ok {
		return 1
	}
	aff, ok := typeAffinities[t]
	if !ok {
		return 1
	}
	m := we.baseMultiplier
	for i := 0; i < affinityDims; i++ {
		m += aff[i] * we.effect[i]
	}
	return math.Max(minWeatherMultiplier, math.Min(maxWeatherMultiplier, m))
}

// MoveWeatherBonus is the fixed move-type bonus layered on top of the
// affinity multiplier inside damage resolution.
func MoveWeatherBonus(moveType game.ElementType, condition string) float64 {
	switch normalizeCondition(condition) {
	case WeatherSunny:
		switch moveType {
		case game.Fire:
			return 1.5
		case game.Water:
			return 0.5
		}
	case WeatherRain:
		switch moveType {
		case game.Water:
			return 1.5
		case game.Fire:
			return 0.5
		}
	}
	return 1
}

// TimeBonus is 1.1 between 06:00 and 18:00 local time, 0.95 otherwise.
func TimeBonus(now time.Time) float64 {
	h := now.Hour()
	if h >= 6 && h < 18 {
		return 1.1
	}
	return 0.95
}

// NewWeather returns the state for a freshly set condition. Unknown
// conditions produce the cleared state.
func NewWeather(condition string, turns int) game.WeatherState {
	c := normalizeCondition(condition)
	if c == "" {
		return game.WeatherState{}
	}
	if turns <= 0 {
		turns = DefaultWeatherTurns
	}
	return game.WeatherState{Condition: c, Description: weatherEffects[c].description, Turns: turns}
}

// tickWeather decrements the duration and clears the weather at zero.
func tickWeather(w game.WeatherState) game.WeatherState {
	if !w.Active() {
		return w
	}
	w.Turns--
	if w.Turns <= 0 {
		return game.WeatherState{}
	}
	return w
}

func isSandstorm(w game.WeatherState) bool {
	return normalizeCondition(w.Condition) == WeatherSandstorm
}

func sandstormImmune(t game.ElementType) bool {
	return t == game.Rock || t == game.Ground
}
