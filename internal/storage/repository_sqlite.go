package storage

import (
	"errors"

	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) ListSpecies() ([]game.Species, error) {
	var species []game.Species
	if err := r.db.Preload("Moves").Order("id").Find(&species).Error; err != nil {
		return nil, err
	}
	return species, nil
}

func (r *sqliteRepository) GetSpeciesByIDs(ids []uint) ([]game.Species, error) {
	var species []game.Species
	if len(ids) == 0 {
		return species, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&species).Error
	return species, err
}

func (r *sqliteRepository) MovesFor(speciesID uint) ([]game.Move, error) {
	var moves []game.Move
	err := r.db.Model(&game.Move{}).
		Joins("JOIN species_moves ON species_moves.move_id = pokemon_moves.id").
		Where("species_moves.species_id = ?", speciesID).
		Order("pokemon_moves.id").
		Find(&moves).Error
	if err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *sqliteRepository) SaveBattleRecord(rec *game.BattleRecord) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(email string, winner game.Winner, forfeited bool) error {
	if email == "" {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ps game.User
		if err := tx.Where("email = ?", email).First(&ps).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			ps = game.User{Email: email}
		}
		ps.BattlesPlayed++
		switch {
		case forfeited:
			ps.Forfeits++
			ps.Losses++
		case winner == game.WinnerTeam1:
			ps.Wins++
		case winner == game.WinnerTeam2:
			ps.Losses++
		}
		return tx.Save(&ps).Error
	})
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var ps game.User
	if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &ps, nil
}

func (r *sqliteRepository) UpsertUser(email, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = game.User{Email: email, PlayerName: name}
		} else {
			return err
		}
	}
	if name != "" {
		u.PlayerName = name
	}
	return r.db.Save(&u).Error
}

// GetTopPlayers returns top N players ordered by Wins desc, then BattlesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
