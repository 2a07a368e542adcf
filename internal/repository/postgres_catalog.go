package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalog serves the whole catalog from one database.
type PostgresCatalog struct {
	*PostgresMovieRepository
	*PostgresTheaterRepository
}

func NewPostgresCatalog(db *pgxpool.Pool, loc *time.Location) *PostgresCatalog {
	return &PostgresCatalog{
		PostgresMovieRepository:   NewPostgresMovieRepository(db),
		PostgresTheaterRepository: NewPostgresTheaterRepository(db, loc),
	}
}
