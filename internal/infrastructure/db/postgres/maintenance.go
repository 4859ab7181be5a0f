package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dineflow/table-service/internal/domain"
)

type Maintenance struct {
	pool *pgxpool.Pool
}

func NewMaintenance(pool *pgxpool.Pool) *Maintenance { return &Maintenance{pool: pool} }

func (r *Maintenance) ListForDate(ctx context.Context, date string) ([]domain.MaintenanceWindow, error) {
	rows, err := r.pool.Query(ctx, listMaintenanceSQL, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MaintenanceWindow
	for rows.Next() {
		var w domain.MaintenanceWindow
		if err := rows.Scan(&w.TableID, &w.Window.Date, &w.Window.Start, &w.Window.End, &w.Reason); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
