package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"gopkg.in/yaml.v3"
)

type moveEntry struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Power       int    `json:"power" yaml:"power"`
	Accuracy    *int   `json:"accuracy" yaml:"accuracy"`
	PP          int    `json:"pp" yaml:"pp"`
	Category    string `json:"category" yaml:"category"`
	CritRatio   int    `json:"crit_ratio" yaml:"crit_ratio"`
	Description string `json:"description" yaml:"description"`
}

type speciesEntry struct {
	Name      string         `json:"name" yaml:"name"`
	Type      string         `json:"type" yaml:"type"`
	BaseStats game.BaseStats `json:"base_stats" yaml:"base_stats"`
	SpriteURL string         `json:"sprite_url" yaml:"sprite_url"`
	Moves     []string       `json:"moves" yaml:"moves"`
}

type rawConfig struct {
	SpeciesList []speciesEntry `json:"species_list" yaml:"species_list"`
	MoveList    []moveEntry    `json:"move_list" yaml:"move_list"`
	Server      *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Battle *struct {
		SessionTTLSeconds       int `json:"session_ttl_seconds" yaml:"session_ttl_seconds"`
		EvictionIntervalSeconds int `json:"eviction_interval_seconds" yaml:"eviction_interval_seconds"`
		MaxTurns                int `json:"max_turns" yaml:"max_turns"`
		WeatherTurns            int `json:"weather_turns" yaml:"weather_turns"`
	} `json:"battle" yaml:"battle"`
	Hack *struct {
		Probability      *float64 `json:"probability" yaml:"probability"`
		TimeLimitSeconds int      `json:"time_limit_seconds" yaml:"time_limit_seconds"`
	} `json:"hack" yaml:"hack"`
}

// Defaults applied when the config leaves a setting out.
const (
	DefaultServerAddress    = ":8080"
	DefaultSessionTTL       = 10 * time.Minute
	DefaultEvictionInterval = 30 * time.Second
	DefaultMaxTurns         = 100
	DefaultWeatherTurns     = 5
	DefaultHackProbability  = 0.15
	DefaultHackTimeLimit    = 30 * time.Second
)

// LoadedConfig contains the catalog to seed and the runtime settings.
type LoadedConfig struct {
	Species          []game.Species
	Moves            []game.Move
	ServerAddress    string
	SessionTTL       time.Duration
	EvictionInterval time.Duration
	MaxTurns         int
	WeatherTurns     int
	HackProbability  float64
	HackTimeLimit    time.Duration
}

// LoadConfig reads the configuration file at path. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON. It requires the key
// `species_list` and a `move_list` covering every move a species names.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &rc)
	default:
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return build(path, rc)
}

func build(path string, rc rawConfig) (*LoadedConfig, error) {
	if len(rc.SpeciesList) == 0 {
		return nil, fmt.Errorf("config file %s: species_list is empty (provide 'species_list' array)", path)
	}

	moves := make([]game.Move, 0, len(rc.MoveList))
	moveSet := make(map[string]game.Move, len(rc.MoveList))
	for _, m := range rc.MoveList {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, fmt.Errorf("config file %s: move entry missing 'name'", path)
		}
		key := strings.ToLower(name)
		if _, exists := moveSet[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate move name '%s'", path, name)
		}
		t, ok := game.ParseElementType(m.Type)
		if !ok {
			return nil, fmt.Errorf("config file %s: move '%s' has unknown type '%s'", path, name, m.Type)
		}
		acc := 100
		if m.Accuracy != nil {
			acc = *m.Accuracy
		}
		if acc < 0 || acc > 100 {
			return nil, fmt.Errorf("config file %s: move '%s' accuracy %d outside 0-100", path, name, acc)
		}
		if m.Power < 0 {
			return nil, fmt.Errorf("config file %s: move '%s' has negative power", path, name)
		}
		cat := strings.ToLower(strings.TrimSpace(m.Category))
		switch game.MoveCategory(cat) {
		case game.CategoryPhysical, game.CategorySpecial, game.CategoryStatus:
		case "":
			cat = string(game.CategoryPhysical)
		default:
			return nil, fmt.Errorf("config file %s: move '%s' has unknown category '%s'", path, name, m.Category)
		}
		mv := game.Move{
			Name:        name,
			Type:        string(t),
			Power:       m.Power,
			Accuracy:    acc,
			PP:          m.PP,
			Category:    cat,
			CritRatio:   m.CritRatio,
			Description: strings.TrimSpace(m.Description),
		}
		moveSet[key] = mv
		moves = append(moves, mv)
	}

	species := make([]game.Species, 0, len(rc.SpeciesList))
	nameSet := make(map[string]struct{}, len(rc.SpeciesList))
	for _, s := range rc.SpeciesList {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("config file %s: species entry missing 'name'", path)
		}
		ln := strings.ToLower(name)
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate species name '%s'", path, name)
		}
		nameSet[ln] = struct{}{}
		t, ok := game.ParseElementType(s.Type)
		if !ok {
			return nil, fmt.Errorf("config file %s: species '%s' has unknown type '%s'", path, name, s.Type)
		}
		if s.BaseStats.HP <= 0 {
			return nil, fmt.Errorf("config file %s: species '%s' needs a positive base hp", path, name)
		}
		sp := game.Species{
			Name:        name,
			Type:        string(t),
			BaseHP:      s.BaseStats.HP,
			BaseAttack:  s.BaseStats.Attack,
			BaseDefense: s.BaseStats.Defense,
			BaseSpeed:   s.BaseStats.Speed,
			SpriteURL:   strings.TrimSpace(s.SpriteURL),
		}
		for _, mn := range s.Moves {
			mv, ok := moveSet[strings.ToLower(strings.TrimSpace(mn))]
			if !ok {
				return nil, fmt.Errorf("config file %s: species '%s' references unknown move '%s'", path, name, mn)
			}
			sp.Moves = append(sp.Moves, mv)
		}
		species = append(species, sp)
	}

	out := &LoadedConfig{
		Species:          species,
		Moves:            moves,
		ServerAddress:    DefaultServerAddress,
		SessionTTL:       DefaultSessionTTL,
		EvictionInterval: DefaultEvictionInterval,
		MaxTurns:         DefaultMaxTurns,
		WeatherTurns:     DefaultWeatherTurns,
		HackProbability:  DefaultHackProbability,
		HackTimeLimit:    DefaultHackTimeLimit,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if b := rc.Battle; b != nil {
		if b.SessionTTLSeconds > 0 {
			out.SessionTTL = time.Duration(b.SessionTTLSeconds) * time.Second
		}
		if b.EvictionIntervalSeconds > 0 {
			out.EvictionInterval = time.Duration(b.EvictionIntervalSeconds) * time.Second
		}
		if b.MaxTurns > 0 {
			out.MaxTurns = b.MaxTurns
		}
		if b.WeatherTurns > 0 {
			out.WeatherTurns = b.WeatherTurns
		}
	}
	if h := rc.Hack; h != nil {
		if h.Probability != nil {
			if *h.Probability < 0 || *h.Probability > 1 {
				return nil, fmt.Errorf("config file %s: hack probability %v outside 0-1", path, *h.Probability)
			}
			out.HackProbability = *h.Probability
		}
		if h.TimeLimitSeconds > 0 {
			out.HackTimeLimit = time.Duration(h.TimeLimitSeconds) * time.Second
		}
	}
	return out, nil
}
