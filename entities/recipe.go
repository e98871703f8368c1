// File: entities/recipe.go
package entities

import (
	"time"
)

// Menu is a recipe row. Ingredients stay a semicolon-delimited text blob.
type Menu struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	Name               string `gorm:"type:varchar(255);not null;index" json:"name"`
	PrepareTime        int    `gorm:"not null;default:0" json:"prepare_time"`
	PersonNum          int    `gorm:"not null;default:0" json:"person_num"`
	AuthorID           uint   `gorm:"not null;index" json:"author_id"`
	PrepareTimeGroupID *uint  `gorm:"index" json:"prepare_time_group_id,omitempty"`
	Description        string `gorm:"type:text" json:"description"`
	Preparation        string `gorm:"type:text" json:"preparation"`
	Ingredients        string `gorm:"type:text" json:"ingredients"`
	Img                []byte `json:"img,omitempty"`
	Timestamp
}

type MenuGenre struct {
	MenuID  uint `gorm:"primaryKey;autoIncrement:false" json:"menu_id"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false;index" json:"genre_id"`
}

type MenuTag struct {
	MenuID uint `gorm:"primaryKey;autoIncrement:false" json:"menu_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

// Favorite marks a recipe as bookmarked by a user; the row existing is the flag.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	MenuID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"menu_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
