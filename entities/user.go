package entities

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100)" json:"last_name"`
	Role         string     `gorm:"type:varchar(20);not null;default:user" json:"role"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Timestamp
}

// UserAuthor links a registered user to the author record they publish under.
type UserAuthor struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	AuthorID uint `gorm:"uniqueIndex;not null" json:"author_id"`
}
