package entities

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

type Author struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

// PrepareTimeGroup buckets recipes by preparation minutes in [MinMinutes, MaxMinutes).
// MaxMinutes == 0 means the bucket has no upper bound.
type PrepareTimeGroup struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	MinMinutes int    `gorm:"not null;default:0" json:"min_minutes"`
	MaxMinutes int    `gorm:"not null;default:0" json:"max_minutes"`
}

func (g PrepareTimeGroup) Contains(minutes int) bool {
	if minutes < g.MinMinutes {
		return false
	}
	return g.MaxMinutes == 0 || minutes < g.MaxMinutes
}
