package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dineflow/table-service/internal/domain"
)

// Reservations reads reservation snapshots and owns the serialized commit
// path.
type Reservations struct {
	pool *pgxpool.Pool
}

func NewReservations(pool *pgxpool.Pool) *Reservations { return &Reservations{pool: pool} }

func (r *Reservations) ListActiveForDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	rows, err := r.pool.Query(ctx, listActiveReservationsSQL, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// CommitAssignment locks the table row, re-runs the overlap check against the
// committed reservations and inserts. The snapshot that picked this table may
// be stale; the count under the lock is what decides.
//
// Lock order for a single table_id: tables row first, then reservation rows.
// Every writer takes them in this order.
func (r *Reservations) CommitAssignment(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID string
	err = tx.QueryRow(ctx, lockTableSQL, res.TableID).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound("table not found")
	}
	if err != nil {
		return err
	}

	var overlapping int
	err = tx.QueryRow(ctx, countOverlappingSQL,
		res.TableID, res.Window.Date, res.Window.Start, res.Window.End,
	).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.ErrConflict("table already booked for an overlapping window")
	}

	_, err = tx.Exec(ctx, insertReservationSQL,
		res.ID, res.TableID, res.CustomerID, res.Window.Date, res.Window.Start, res.Window.End,
		res.PartySize, string(res.Status), res.CreatedAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Reservations) Release(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	row := r.pool.QueryRow(ctx, releaseReservationSQL, id, string(status))
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either unknown or already terminal; disambiguate for the caller.
		var current string
		probeErr := r.pool.QueryRow(ctx, `SELECT status FROM reservations WHERE id = $1`, id).Scan(&current)
		if errors.Is(probeErr, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound("reservation not found")
		}
		if probeErr != nil {
			return nil, probeErr
		}
		return nil, domain.ErrInvalidState("reservation is not active")
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var res domain.Reservation
	var status string
	err := row.Scan(
		&res.ID, &res.TableID, &res.CustomerID, &res.Window.Date, &res.Window.Start, &res.Window.End,
		&res.PartySize, &status, &res.CreatedAt,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Status = domain.ReservationStatus(status)
	if !res.Status.Valid() {
		return domain.Reservation{}, domain.ErrInvalidState("invalid status in db")
	}
	return res, nil
}
