package domain

import "context"

type AgeRating string

const (
	AgeRatingAll AgeRating = "ALL"
	AgeRating12  AgeRating = "12"
	AgeRating15  AgeRating = "15"
	AgeRating18  AgeRating = "18"
)

type Movie struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	PosterUrl string    `json:"posterUrl"`
	Genres    []string  `json:"genres"`
	AgeRating AgeRating `json:"ageRating"`
	Runtime   int       `json:"runtime"`
}

// CatalogService is the read-only source of movies, theaters and
// screenings. Records it returns are assumed to be consistent with each
// other.
type CatalogService interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	ListTheaters(ctx context.Context, region string) ([]Theater, error)
	ListScreenings(ctx context.Context, movieID, theaterID int, date string) ([]Screening, error)
	GetMovie(ctx context.Context, id int) (*Movie, error)
	GetTheater(ctx context.Context, id int) (*Theater, error)
	GetScreening(ctx context.Context, id int) (*Screening, error)
}
