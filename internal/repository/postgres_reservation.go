package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-checkout/internal/domain"
)

const orderIDConstraint = "reservations_order_id_key"

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

func (p *PostgresReservationRepository) Create(ctx context.Context, reservation domain.Reservation) error {
	ticketCounts, err := json.Marshal(reservation.TicketTypeCounts)
	if err != nil {
		return err
	}

	err = runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reservations (
				id,
				order_id,
				screening_id,
				ticket_counts,
				total_price,
				currency,
				customer_email,
				payment_status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`

		_, err := tx.Exec(
			ctx,
			query,
			reservation.ID,
			reservation.OrderID,
			reservation.ScreeningID,
			ticketCounts,
			reservation.TotalPrice.String(),
			reservation.Currency,
			reservation.CustomerEmail,
			reservation.PaymentStatus)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(reservation.SeatIDs))
		for _, seatID := range reservation.SeatIDs {
			rows = append(rows, []any{
				reservation.ID,
				reservation.ScreeningID,
				seatID,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"reservation_seats"},
			[]string{"reservation_id", "screening_id", "seat_id"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if pgErr.ConstraintName == orderIDConstraint {
			return domain.ErrDuplicateOrder
		}
		return domain.ErrSeatAlreadyReserved
	}

	return err
}

func (p *PostgresReservationRepository) AttachCheckoutSession(
	ctx context.Context,
	reservationID, checkoutSessionID string) error {

	query := `
		UPDATE reservations
		SET checkout_session_id = $2
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, reservationID, checkoutSessionID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// Cancel marks the reservation as canceled and frees its seats.
func (p *PostgresReservationRepository) Cancel(ctx context.Context, reservationID string) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE reservations
			SET payment_status = $2
			WHERE id = $1
		`

		tag, err := tx.Exec(ctx, query, reservationID, domain.PaymentStatusCanceled)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `DELETE FROM reservation_seats WHERE reservation_id = $1`, reservationID)
		return err
	})
}

const reservationColumns = `
	r.id,
	r.order_id,
	r.screening_id,
	r.ticket_counts,
	r.total_price,
	r.currency,
	r.customer_email,
	r.payment_status,
	COALESCE(r.checkout_session_id, ''),
	r.created_at,
	COALESCE(array_agg(rs.seat_id ORDER BY rs.seat_id) FILTER (WHERE rs.seat_id IS NOT NULL), '{}')`

func (p *PostgresReservationRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		LEFT JOIN reservation_seats rs ON rs.reservation_id = r.id
		WHERE r.order_id = $1
		GROUP BY r.id
	`

	return scanReservation(p.db.QueryRow(ctx, query, orderID))
}

func (p *PostgresReservationRepository) GetByCheckoutSessionID(
	ctx context.Context,
	checkoutSessionID string) (*domain.Reservation, error) {

	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		LEFT JOIN reservation_seats rs ON rs.reservation_id = r.id
		WHERE r.checkout_session_id = $1
		GROUP BY r.id
	`

	return scanReservation(p.db.QueryRow(ctx, query, checkoutSessionID))
}

func (p *PostgresReservationRepository) UpdatePaymentStatus(
	ctx context.Context,
	reservationID string,
	status domain.PaymentStatus) error {

	query := `
		UPDATE reservations
		SET payment_status = $2
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, reservationID, status)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var ticketCounts []byte
	var totalPrice pgtype.Numeric

	err := row.Scan(
		&reservation.ID,
		&reservation.OrderID,
		&reservation.ScreeningID,
		&ticketCounts,
		&totalPrice,
		&reservation.Currency,
		&reservation.CustomerEmail,
		&reservation.PaymentStatus,
		&reservation.CheckoutSessionID,
		&reservation.CreatedAt,
		&reservation.SeatIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(ticketCounts, &reservation.TicketTypeCounts); err != nil {
		return nil, err
	}

	reservation.TotalPrice = toDecimal(totalPrice)

	return &reservation, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
