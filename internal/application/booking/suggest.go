package booking

import (
	"context"
	"sort"

	"github.com/dineflow/table-service/internal/domain"
	"github.com/dineflow/table-service/internal/metrics"
)

type TimeSuggestion struct {
	Time        string `json:"time"`
	Available   bool   `json:"available"`
	TablesCount int    `json:"tables_count"`
	// Error is set when this candidate's availability check failed; the rest
	// of the scan still reports.
	Error string `json:"error,omitempty"`
}

// AlternativeTimes scans candidate slots around the requested time in fixed
// steps, skipping the requested time itself, and reports which are free.
// windowMinutes of 0 uses the configured default. The scan honors ctx between
// iterations; an expired context returns what was gathered so far along with
// the context error.
func (s *Service) AlternativeTimes(ctx context.Context, req domain.AssignmentRequest, windowMinutes int) ([]TimeSuggestion, error) {
	if windowMinutes <= 0 {
		windowMinutes = s.opts.SuggestWindowMinutes
	}
	requested, err := domain.ParseClock(req.Time)
	if err != nil {
		return nil, err
	}
	metrics.RecordSuggestionScan()

	step := s.opts.SuggestStepMinutes
	var out []TimeSuggestion
	for candidate := requested - windowMinutes; candidate <= requested+windowMinutes; candidate += step {
		if candidate == requested || candidate < 0 || candidate >= 24*60 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sortByProximity(out, requested), err
		}
		out = append(out, s.probe(ctx, req, candidate))
	}
	return sortByProximity(out, requested), nil
}

// BestTimesInRange scans a fixed daily range instead of the neighborhood of
// the request, surfacing the slots with the most open tables. Used for "best
// general openings" rather than closest-to-request suggestions.
func (s *Service) BestTimesInRange(ctx context.Context, req domain.AssignmentRequest) ([]TimeSuggestion, error) {
	start, err := domain.ParseClock(s.opts.BestTimesStart)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseClock(s.opts.BestTimesEnd)
	if err != nil {
		return nil, err
	}
	metrics.RecordSuggestionScan()

	step := s.opts.SuggestStepMinutes
	var out []TimeSuggestion
	for candidate := start; candidate <= end; candidate += step {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out = append(out, s.probe(ctx, req, candidate))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TablesCount > out[j].TablesCount
	})
	return out, nil
}

// probe re-runs the availability calculation for one candidate time. A failed
// probe is reported in place rather than aborting the scan.
func (s *Service) probe(ctx context.Context, req domain.AssignmentRequest, candidate int) TimeSuggestion {
	probe := req
	probe.Time = domain.FormatClock(candidate)

	avail, err := s.computeAvailability(ctx, probe)
	if err != nil {
		return TimeSuggestion{Time: probe.Time, Error: err.Error()}
	}
	return TimeSuggestion{
		Time:        probe.Time,
		Available:   avail.Stats.AvailableTables > 0,
		TablesCount: avail.Stats.AvailableTables,
	}
}

// sortByProximity orders suggestions by (available desc, distance from the
// requested time asc), with the clock time as the final tie-break.
func sortByProximity(suggestions []TimeSuggestion, requested int) []TimeSuggestion {
	distance := func(s TimeSuggestion) int {
		m, err := domain.ParseClock(s.Time)
		if err != nil {
			return 1 << 30
		}
		d := m - requested
		if d < 0 {
			d = -d
		}
		return d
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Available != suggestions[j].Available {
			return suggestions[i].Available
		}
		di, dj := distance(suggestions[i]), distance(suggestions[j])
		if di != dj {
			return di < dj
		}
		return suggestions[i].Time < suggestions[j].Time
	})
	return suggestions
}
