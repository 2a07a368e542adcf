package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-checkout/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetSeatLayout(ctx context.Context, screeningID int) (*domain.SeatLayout, error) {
	query := `
		SELECT sr.seat_rows, sr.seat_columns, sr.premium_rows
		FROM screenings sc
		JOIN screens sr ON sc.screen_id = sr.id
		WHERE sc.id = $1
	`

	layout := domain.SeatLayout{ScreeningID: screeningID}

	err := p.db.QueryRow(ctx, query, screeningID).Scan(&layout.Rows, &layout.Columns, &layout.PremiumRows)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	query = `
		SELECT seat_id
		FROM reservation_seats
		WHERE screening_id = $1
		ORDER BY seat_id
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	layout.OccupiedSeatIDs = []string{}

	for rows.Next() {
		var seatID string

		if err := rows.Scan(&seatID); err != nil {
			return nil, err
		}

		layout.OccupiedSeatIDs = append(layout.OccupiedSeatIDs, seatID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &layout, nil
}
