package domain

import "time"

// Rate is one user's rating of one film. A user may hold at most one rate
// per film; the title and username are denormalized onto the record so
// listings don't need joins.
type Rate struct {
	ID           string    `json:"id"`
	FilmID       string    `json:"film_id"`
	PrimaryTitle string    `json:"primaryTitle"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Value        float64   `json:"rate"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
