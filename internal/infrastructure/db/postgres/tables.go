package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dineflow/table-service/internal/domain"
)

// Tables reads the table catalog.
type Tables struct {
	pool *pgxpool.Pool
}

func NewTables(pool *pgxpool.Pool) *Tables { return &Tables{pool: pool} }

func (r *Tables) ListActive(ctx context.Context, areaID string) ([]domain.Table, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if areaID == "" {
		rows, err = r.pool.Query(ctx, listActiveTablesSQL)
	} else {
		rows, err = r.pool.Query(ctx, listActiveTablesByAreaSQL, areaID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Tables) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	row := r.pool.QueryRow(ctx, getTableSQL, id)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound("table not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTable(row pgx.Row) (domain.Table, error) {
	var t domain.Table
	var shape string
	err := row.Scan(&t.ID, &t.AreaID, &t.AreaName, &t.Capacity, &t.MinCapacity, &shape, &t.Accessible, &t.Active)
	if err != nil {
		return domain.Table{}, err
	}
	t.Shape = domain.TableShape(shape)
	return t, nil
}
