package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

const yamlConfig = `
server:
  address: ":9090"
battle:
  session_ttl_seconds: 120
  max_turns: 40
hack:
  probability: 0.3
move_list:
  - name: Ember
    type: fire
    power: 40
    accuracy: 100
    category: special
  - name: Scratch
    type: normal
    power: 40
species_list:
  - name: Charmander
    type: Fire
    base_stats: {hp: 39, attack: 52, defense: 43, speed: 65}
    moves: [ember, scratch]
`

func TestLoadConfig_YAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yaml", yamlConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" || cfg.SessionTTL != 2*time.Minute || cfg.MaxTurns != 40 {
		t.Fatalf("unexpected settings %+v", cfg)
	}
	if cfg.HackProbability != 0.3 || cfg.HackTimeLimit != DefaultHackTimeLimit {
		t.Fatalf("unexpected hack settings %+v", cfg)
	}
	if len(cfg.Species) != 1 || cfg.Species[0].Type != "fire" || len(cfg.Species[0].Moves) != 2 {
		t.Fatalf("unexpected species %+v", cfg.Species)
	}
	if cfg.Moves[1].Accuracy != 100 || cfg.Moves[1].Category != "physical" {
		t.Fatalf("expected move defaults, got %+v", cfg.Moves[1])
	}
}

func TestLoadConfig_JSONDefaults(t *testing.T) {
	body := `{"move_list":[{"name":"Tackle","type":"normal","power":40}],
	"species_list":[{"name":"Rattata","type":"normal","base_stats":{"hp":30,"attack":56,"defense":35,"speed":72},"moves":["Tackle"]}]}`
	cfg, err := LoadConfig(writeConfig(t, "config.json", body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != DefaultServerAddress || cfg.HackProbability != DefaultHackProbability {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	cases := map[string]string{
		"species_list is empty": `{"species_list":[]}`,
		"duplicate species":     `{"species_list":[{"name":"A","type":"fire","base_stats":{"hp":1}},{"name":"a","type":"fire","base_stats":{"hp":1}}]}`,
		"unknown type":          `{"species_list":[{"name":"A","type":"cosmic","base_stats":{"hp":1}}]}`,
		"unknown move":          `{"species_list":[{"name":"A","type":"fire","base_stats":{"hp":1},"moves":["ember"]}]}`,
		"outside 0-100":         `{"move_list":[{"name":"X","type":"fire","accuracy":120}],"species_list":[{"name":"A","type":"fire","base_stats":{"hp":1}}]}`,
	}
	for want, body := range cases {
		_, err := LoadConfig(writeConfig(t, "config.json", body))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error containing %q, got %v", want, err)
		}
	}
}
