package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-checkout/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	query := `
		SELECT id, title, poster_url, genres, age_rating, runtime
		FROM movies
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.PosterUrl,
			&movie.Genres,
			&movie.AgeRating,
			&movie.Runtime,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, poster_url, genres, age_rating, runtime
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.PosterUrl,
		&movie.Genres,
		&movie.AgeRating,
		&movie.Runtime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &movie, nil
}
