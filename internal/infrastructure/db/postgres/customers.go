package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dineflow/table-service/internal/domain"
)

type Customers struct {
	pool *pgxpool.Pool
}

func NewCustomers(pool *pgxpool.Pool) *Customers { return &Customers{pool: pool} }

func (r *Customers) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, getCustomerSQL, id).Scan(&c.ID, &c.Name, &c.VIP, &c.NoShowCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("customer not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
