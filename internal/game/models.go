package game

import (
	"time"

	"gorm.io/gorm"
)

// Species is a catalog entry. Stats and the move list are seeded from the
// server config on first start.
type Species struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex"`
	Type        string `json:"type"`
	BaseHP      int    `json:"base_hp"`
	BaseAttack  int    `json:"base_attack"`
	BaseDefense int    `json:"base_defense"`
	BaseSpeed   int    `json:"base_speed"`
	SpriteURL   string `json:"sprite_url"`
	// Moves uses an explicit join table so move order is not implied.
	Moves []Move `json:"moves" gorm:"many2many:species_moves;"`
}

// TableName keeps the catalog table name stable across renames.
func (Species) TableName() string { return "pokemon_species" }

// BaseStats returns the species stats in battle form.
func (s Species) BaseStats() BaseStats {
	return BaseStats{HP: s.BaseHP, Attack: s.BaseAttack, Defense: s.BaseDefense, Speed: s.BaseSpeed}
}

type Move struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex"`
	Type        string `json:"type"`
	Power       int    `json:"power"`
	Accuracy    int    `json:"accuracy"`
	PP          int    `json:"pp"`
	Category    string `json:"category"`
	CritRatio   int    `json:"crit_ratio"`
	Description string `json:"description"`
}

func (Move) TableName() string { return "pokemon_moves" }

// ToPokemonMove converts the persisted row to the battle value type.
func (m Move) ToPokemonMove() PokemonMove {
	return PokemonMove{
		Name:        m.Name,
		Type:        ElementType(m.Type),
		Power:       m.Power,
		Accuracy:    m.Accuracy,
		PP:          m.PP,
		Category:    MoveCategory(m.Category),
		CritRatio:   m.CritRatio,
		Description: m.Description,
	}
}

// BattleRecord is the persisted outcome of a finished battle.
type BattleRecord struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt   time.Time `json:"created_at"`
	Mode        string    `json:"mode" gorm:"index"`
	PlayerEmail string    `json:"-" gorm:"index"`
	Winner      string    `json:"winner"`
	Turns       int       `json:"turns"`
	Weather     string    `json:"weather"`
	ActionCount int       `json:"action_count"`
	Forfeited   bool      `json:"forfeited"`
	FinishedAt  time.Time `json:"finished_at"`
}

func (BattleRecord) TableName() string { return "battle_records" }

// User stores player identity and aggregate battle stats.
type User struct {
	gorm.Model
	PlayerName    string `json:"player_name"`
	Email         string `json:"email" gorm:"uniqueIndex"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Forfeits      int    `json:"forfeits"`
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }
