package migration

import (
	"fmt"

	"wejv/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPrepareTimeGroups are the buckets offered by the prepare time filter.
var DefaultPrepareTimeGroups = []entities.PrepareTimeGroup{
	{Name: "< 15 min", MinMinutes: 0, MaxMinutes: 15},
	{Name: "15 - 30 min", MinMinutes: 15, MaxMinutes: 30},
	{Name: "30 - 60 min", MinMinutes: 30, MaxMinutes: 60},
	{Name: "> 60 min", MinMinutes: 60, MaxMinutes: 0},
}

func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	models := []any{
		&entities.Author{},
		&entities.Genre{},
		&entities.Tag{},
		&entities.PrepareTimeGroup{},
		&entities.Menu{},
		&entities.MenuGenre{},
		&entities.MenuTag{},
		&entities.User{},
		&entities.UserAuthor{},
		&entities.Favorite{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	return SeedPrepareTimeGroups(db)
}

// SeedPrepareTimeGroups inserts the default buckets, leaving existing rows untouched.
func SeedPrepareTimeGroups(db *gorm.DB) error {
	for _, group := range DefaultPrepareTimeGroups {
		group := group
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&group).Error
		if err != nil {
			return fmt.Errorf("seed prepare time group %q: %w", group.Name, err)
		}
	}
	return nil
}
