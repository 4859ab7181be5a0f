package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dineflow/table-service/internal/domain"
)

type Waitlist struct {
	pool *pgxpool.Pool
}

func NewWaitlist(pool *pgxpool.Pool) *Waitlist { return &Waitlist{pool: pool} }

func (r *Waitlist) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	_, err := r.pool.Exec(ctx, insertWaitlistSQL,
		e.ID, e.CustomerID, e.Date, e.PartySize, e.PreferredTime, e.AreaID,
		string(e.Status), e.Priority, e.CreatedAt, e.ExpiresAt, e.OfferedAt, e.OfferedTable,
	)
	return err
}

func (r *Waitlist) GetByID(ctx context.Context, id string) (*domain.WaitlistEntry, error) {
	row := r.pool.QueryRow(ctx, getWaitlistSQL, id)
	e, err := scanWaitlistEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("waitlist entry not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Waitlist) ListWaiting(ctx context.Context, date string) ([]*domain.WaitlistEntry, error) {
	rows, err := r.pool.Query(ctx, listWaitingSQL, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.WaitlistEntry
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Waitlist) Update(ctx context.Context, e *domain.WaitlistEntry) error {
	tag, err := r.pool.Exec(ctx, updateWaitlistSQL,
		e.ID, string(e.Status), e.Priority, e.ExpiresAt, e.OfferedAt, e.OfferedTable,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("waitlist entry not found")
	}
	return nil
}

func (r *Waitlist) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, expireOverdueSQL, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanWaitlistEntry(row pgx.Row) (*domain.WaitlistEntry, error) {
	var e domain.WaitlistEntry
	var status string
	err := row.Scan(
		&e.ID, &e.CustomerID, &e.Date, &e.PartySize, &e.PreferredTime, &e.AreaID,
		&status, &e.Priority, &e.CreatedAt, &e.ExpiresAt, &e.OfferedAt, &e.OfferedTable,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.WaitlistStatus(status)
	return &e, nil
}
