package models

import (
	"time"

	"github.com/cinevault-inc/cinevault/internal/shared/constants"
)

// MovieModel represents the database persistence model for catalog movies
type MovieModel struct {
	ID                uint    `gorm:"primarykey"`
	SID               string  `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: mov_xxx"`
	Title             string  `gorm:"not null;size:255;index:idx_movie_title"`
	Genre             string  `gorm:"not null;size:100;index:idx_movie_genre"`
	ReleaseYear       int     `gorm:"not null;index:idx_movie_year"`
	Rating            float64 `gorm:"not null"`
	Director          string  `gorm:"not null;size:255"`
	DurationMinutes   int     `gorm:"not null"`
	MainLead          string  `gorm:"not null;size:255"`
	StreamingPlatform string  `gorm:"not null;size:100"`
	Description       string  `gorm:"type:text"`
	Premium           bool    `gorm:"not null;default:false;index:idx_movie_premium"`
	PosterURL         *string `gorm:"size:500"`
	BannerURL         *string `gorm:"size:500"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return constants.TableMovies
}
