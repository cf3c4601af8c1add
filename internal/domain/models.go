// Package domain defines the persistence models for movies and genres, plus
// the read-only course catalogue. Movie and Genre are mapped with GORM and
// shared across the repository, service and HTTP layers.
package domain

import "time"

// Genre is a named movie category. Names are stored trimmed and lowercased,
// and are unique.
type Genre struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey" example:"1b4e28ba-2fa1-41d2-883f-0016d3cca427"`
	Name      string    `json:"name"      gorm:"type:varchar(255);not null;uniqueIndex:ux_genre_name" example:"action"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Genre.
func (Genre) TableName() string { return "genres" }

// Movie is a film with a release date and one or more genre names.
//
// TitleKey holds the case-folded title. Together with ReleaseDate it forms the
// natural key used for duplicate detection, backed by a unique index.
type Movie struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey" example:"6fa459ea-ee8a-3ca4-894e-db77e160355e"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null" example:"Movie Title"`
	TitleKey    string    `json:"-"           gorm:"type:varchar(255);not null;uniqueIndex:ux_movie_title_release,priority:1"`
	Description string    `json:"description" gorm:"type:text;not null" example:"Movie description"`
	ReleaseDate time.Time `json:"releaseDate" gorm:"not null;index;uniqueIndex:ux_movie_title_release,priority:2" example:"2023-10-31T00:00:00Z"`
	Genre       []string  `json:"genre"       gorm:"type:text;not null;serializer:json" example:"action,adventure"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Movie.
func (Movie) TableName() string { return "movies" }

// Course is an entry of the static course catalogue.
type Course struct {
	ID    string `json:"id"    example:"ghi-789"`
	Title string `json:"title" example:"Node.js"`
}
