package domain

// Film is one catalog entry joined with its aggregate rating, when one
// exists. AverageRating and NumVotes are nil for films nobody has voted on;
// they come from a separate ratings table keyed by tconst.
type Film struct {
	ID             string   `json:"id"`
	TConst         string   `json:"-"`
	PrimaryTitle   string   `json:"primaryTitle"`
	StartYear      int      `json:"startYear"`
	RuntimeMinutes string   `json:"runtimeMinutes,omitempty"`
	Genres         string   `json:"genres,omitempty"`
	AverageRating  *float64 `json:"averageRating"`
	NumVotes       *int64   `json:"numVotes,omitempty"`
}

// AggregateRating is the vote summary for a film, keyed by tconst.
type AggregateRating struct {
	TConst        string
	AverageRating float64
	NumVotes      int64
}
