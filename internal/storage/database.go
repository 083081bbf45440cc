package storage

import (
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/keys"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, migrates the schema and seeds
// the species and move catalog from config when the database is empty.
func OpenAndMigrate(dataSourceName string, speciesFromConfig []game.Species, movesFromConfig []game.Move) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// species_moves is created by the many2many association on Species.
	err = db.AutoMigrate(&game.Move{}, &game.Species{}, &game.BattleRecord{}, &game.User{})
	if err != nil {
		return nil, err
	}
	if err := seedCatalog(db, speciesFromConfig, movesFromConfig); err != nil {
		return nil, err
	}
	return db, nil
}

// seedCatalog inserts moves first so species can link to their ids.
func seedCatalog(db *gorm.DB, speciesFromConfig []game.Species, movesFromConfig []game.Move) error {
	var count int64
	db.Model(&game.Species{}).Count(&count)
	if count > 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		moves := append([]game.Move(nil), movesFromConfig...)
		if len(moves) > 0 {
			if err := tx.Create(&moves).Error; err != nil {
				return err
			}
		}
		byName := make(map[string]game.Move, len(moves))
		for _, m := range moves {
			byName[keys.NameKey(m.Name)] = m
		}
		for _, s := range speciesFromConfig {
			sp := s
			linked := make([]game.Move, 0, len(s.Moves))
			for _, m := range s.Moves {
				if stored, ok := byName[keys.NameKey(m.Name)]; ok {
					linked = append(linked, stored)
				}
			}
			sp.Moves = linked
			if err := tx.Create(&sp).Error; err != nil {
				return err
			}
		}
		logging.Info("catalog seeded", logging.Fields{
			constants.LogFieldSource: "config",
			constants.LogFieldCount:  len(speciesFromConfig),
		})
		return nil
	})
}
