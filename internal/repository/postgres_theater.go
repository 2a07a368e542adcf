package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

// availableSeatsExpr counts the non-aisle cells of a screen minus the seats
// already reserved for the screening.
const availableSeatsExpr = `
	(sr.seat_rows * (sr.seat_columns - CASE WHEN sr.seat_columns > 8 THEN 2 ELSE 0 END))
	- (SELECT count(*) FROM reservation_seats rs WHERE rs.screening_id = sc.id)`

type PostgresTheaterRepository struct {
	db       *pgxpool.Pool
	location *time.Location
}

// NewPostgresTheaterRepository returns a repository that interprets
// screening dates in loc.
func NewPostgresTheaterRepository(db *pgxpool.Pool, loc *time.Location) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db:       db,
		location: loc,
	}
}

func (p *PostgresTheaterRepository) ListTheaters(ctx context.Context, region string) ([]domain.Theater, error) {
	query := `
		SELECT id, name, region, address
		FROM theaters
		WHERE region = $1 OR $1 = ''
		ORDER BY name
	`

	rows, err := p.db.Query(ctx, query, region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	theaters := []domain.Theater{}

	for rows.Next() {
		var theater domain.Theater

		err := rows.Scan(&theater.ID, &theater.Name, &theater.Region, &theater.Address)
		if err != nil {
			return nil, err
		}

		theaters = append(theaters, theater)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return theaters, nil
}

func (p *PostgresTheaterRepository) GetTheater(ctx context.Context, id int) (*domain.Theater, error) {
	query := `SELECT id, name, region, address FROM theaters WHERE id = $1`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, id).Scan(&theater.ID, &theater.Name, &theater.Region, &theater.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &theater, nil
}

func (p *PostgresTheaterRepository) ListScreenings(
	ctx context.Context,
	movieID, theaterID int,
	date string) ([]domain.Screening, error) {

	query := `
		SELECT
			sc.id,
			sc.movie_id,
			sr.theater_id,
			sr.name,
			sc.start_time,
			sc.end_time,
			sc.unit_price,
			` + availableSeatsExpr + `
		FROM screenings sc
		JOIN screens sr ON sc.screen_id = sr.id
		WHERE sc.movie_id = $1
			AND sr.theater_id = $2
			AND (sc.start_time AT TIME ZONE $4)::date = $3::date
		ORDER BY sc.start_time
	`

	rows, err := p.db.Query(ctx, query, movieID, theaterID, date, p.location.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := []domain.Screening{}

	for rows.Next() {
		screening, err := p.scanScreening(rows)
		if err != nil {
			return nil, err
		}

		screenings = append(screenings, *screening)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}

func (p *PostgresTheaterRepository) GetScreening(ctx context.Context, id int) (*domain.Screening, error) {
	query := `
		SELECT
			sc.id,
			sc.movie_id,
			sr.theater_id,
			sr.name,
			sc.start_time,
			sc.end_time,
			sc.unit_price,
			` + availableSeatsExpr + `
		FROM screenings sc
		JOIN screens sr ON sc.screen_id = sr.id
		WHERE sc.id = $1
	`

	screening, err := p.scanScreening(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return screening, nil
}

func (p *PostgresTheaterRepository) scanScreening(row pgx.Row) (*domain.Screening, error) {
	var screening domain.Screening
	var unitPrice pgtype.Numeric

	err := row.Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.TheaterID,
		&screening.ScreenName,
		&screening.StartTime,
		&screening.EndTime,
		&unitPrice,
		&screening.AvailableSeats,
	)
	if err != nil {
		return nil, err
	}

	screening.StartTime = screening.StartTime.In(p.location)
	screening.EndTime = screening.EndTime.In(p.location)
	screening.UnitPrice = toDecimal(unitPrice)

	return &screening, nil
}

func toDecimal(numeric pgtype.Numeric) decimal.Decimal {
	if !numeric.Valid || numeric.NaN || numeric.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(numeric.Int, numeric.Exp)
}
