package booking

import (
	"context"
	"sort"

	zlog "github.com/rs/zerolog/log"

	"github.com/dineflow/table-service/internal/domain"
	"github.com/dineflow/table-service/internal/metrics"
)

type AreaAvailability struct {
	AreaID   string         `json:"area_id"`
	AreaName string         `json:"area_name"`
	Tables   []domain.Table `json:"tables"`
}

type AvailabilityStats struct {
	AvailableTables int `json:"available_tables"`
	TotalCapacity   int `json:"total_capacity"`
	AreasWithTables int `json:"areas_with_tables"`
}

type AvailabilityResult struct {
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	DurationMinutes int                `json:"duration_minutes"`
	Areas           []AreaAvailability `json:"areas"`
	Tables          []domain.Table     `json:"tables"`
	Stats           AvailabilityStats  `json:"stats"`
}

// CheckAvailability returns the set of tables free for the request's window,
// grouped by area. Results may be served from a short-TTL cache; they are a
// display snapshot and never feed a commit decision.
func (s *Service) CheckAvailability(ctx context.Context, req domain.AssignmentRequest) (*AvailabilityResult, error) {
	key := cacheKeyAvailability(req)
	if s.cache != nil {
		var cached AvailabilityResult
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			metrics.RecordAvailabilityCheck(metrics.SourceCache)
			return &cached, nil
		}
	}

	res, err := s.computeAvailability(ctx, req)
	if err != nil {
		return nil, err
	}
	metrics.RecordAvailabilityCheck(metrics.SourceStore)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res, s.opts.AvailabilityTTL); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return res, nil
}

// computeAvailability reads fresh store snapshots. The commit path and the
// scan engines call this directly, bypassing the cache.
func (s *Service) computeAvailability(ctx context.Context, req domain.AssignmentRequest) (*AvailabilityResult, error) {
	window, err := req.Window()
	if err != nil {
		return nil, err
	}

	tables, err := s.tables.ListActive(ctx, req.AreaID)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListActiveForDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.maintenance.ListForDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	free := make([]domain.Table, 0, len(tables))
	for _, t := range tables {
		if !t.Active {
			continue
		}
		if domain.HasConflict(window, t.ID, reservations, "") {
			continue
		}
		if domain.UnderMaintenance(window, t.ID, maintenance) {
			continue
		}
		free = append(free, t)
	}
	sort.Slice(free, func(i, j int) bool {
		if free[i].AreaID != free[j].AreaID {
			return free[i].AreaID < free[j].AreaID
		}
		return free[i].ID < free[j].ID
	})

	res := &AvailabilityResult{
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Areas:           []AreaAvailability{},
		Tables:          free,
	}
	for _, t := range free {
		res.Stats.AvailableTables++
		res.Stats.TotalCapacity += t.Capacity
		n := len(res.Areas)
		if n > 0 && res.Areas[n-1].AreaID == t.AreaID {
			res.Areas[n-1].Tables = append(res.Areas[n-1].Tables, t)
			continue
		}
		res.Areas = append(res.Areas, AreaAvailability{AreaID: t.AreaID, AreaName: t.AreaName, Tables: []domain.Table{t}})
	}
	res.Stats.AreasWithTables = len(res.Areas)
	return res, nil
}
