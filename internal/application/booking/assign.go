package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/dineflow/table-service/internal/domain"
	"github.com/dineflow/table-service/internal/metrics"
)

// Reason codes for unassigned results.
const (
	ReasonNoTablesFree  = "no_tables_free"  // nothing free for the window at all
	ReasonNoSingleTable = "no_single_table" // free tables exist but none seats the party alone
)

type AssignmentResult struct {
	Assigned bool `json:"assigned"`

	// Set when assigned.
	Table       *domain.Table       `json:"table,omitempty"`
	Score       float64             `json:"score,omitempty"`
	Breakdown   map[string]float64  `json:"breakdown,omitempty"`
	Reservation *domain.Reservation `json:"reservation,omitempty"`

	// Set when not assigned.
	Reason           string               `json:"reason,omitempty"`
	Alternatives     []domain.TableScore  `json:"alternatives,omitempty"`
	Combinations     []domain.Combination `json:"combinations,omitempty"`
	AlternativeTimes []TimeSuggestion     `json:"alternative_times,omitempty"`
}

// AssignTable picks the best free table for the request and commits a
// reservation for it. The availability read is a snapshot; the commit runs the
// conflict check again inside the store's serialization boundary, and a
// conflict found there is authoritative: it surfaces as conflict_detected and
// is never retried here.
func (s *Service) AssignTable(ctx context.Context, req domain.AssignmentRequest) (*AssignmentResult, error) {
	avail, err := s.computeAvailability(ctx, req)
	if err != nil {
		return nil, err
	}

	best, alts := domain.SelectTable(req, avail.Tables, s.opts.MaxAlternatives)
	if best == nil {
		return s.unassigned(ctx, req, avail)
	}

	window, err := req.Window()
	if err != nil {
		return nil, err
	}
	res := &domain.Reservation{
		ID:        uuid.NewString(),
		TableID:   best.Table.ID,
		Window:    window,
		PartySize: req.PartySize,
		Status:    domain.StatusConfirmed,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.reservations.CommitAssignment(ctx, res); err != nil {
		var ae *domain.AppError
		if errors.As(err, &ae) && ae.Code == domain.CodeConflict {
			metrics.RecordAssignment(metrics.OutcomeConflict)
		}
		return nil, err
	}
	metrics.RecordAssignment(metrics.OutcomeAssigned)

	if err := s.notify.ReservationAssigned(ctx, res); err != nil {
		zlog.Warn().Err(err).Str("reservation_id", res.ID).Msg("assignment notification failed")
	}

	table := best.Table
	return &AssignmentResult{
		Assigned:     true,
		Table:        &table,
		Score:        best.Total,
		Breakdown:    best.Breakdown,
		Reservation:  res,
		Alternatives: alts,
	}, nil
}

// unassigned builds the failure result: combination proposals when the party
// outgrows every single table, alternate times when the slot itself is the
// problem.
func (s *Service) unassigned(ctx context.Context, req domain.AssignmentRequest, avail *AvailabilityResult) (*AssignmentResult, error) {
	metrics.RecordAssignment(metrics.OutcomeUnavailable)

	out := &AssignmentResult{Assigned: false, Reason: ReasonNoTablesFree}
	if len(avail.Tables) > 0 {
		out.Reason = ReasonNoSingleTable
		out.Combinations = domain.CombineTables(req.PartySize, avail.Tables, s.opts.MaxCombinations)
		if len(out.Combinations) > 0 {
			return out, nil
		}
	}

	suggestions, err := s.AlternativeTimes(ctx, req, 0)
	if err != nil {
		// The assignment verdict stands even when the scan is cut short.
		zlog.Warn().Err(err).Msg("alternate time scan failed")
	}
	out.AlternativeTimes = suggestions
	return out, nil
}

// ProposeCombination searches multi-table seatings for the request without
// committing anything.
func (s *Service) ProposeCombination(ctx context.Context, req domain.AssignmentRequest) ([]domain.Combination, error) {
	avail, err := s.computeAvailability(ctx, req)
	if err != nil {
		return nil, err
	}
	return domain.CombineTables(req.PartySize, avail.Tables, s.opts.MaxCombinations), nil
}

// ReleaseReservation moves a reservation to a terminal status, freeing its
// table, then consults the waitlist for the next eligible entry.
func (s *Service) ReleaseReservation(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, *domain.WaitlistEntry, error) {
	if !status.Terminal() {
		return nil, nil, domain.ErrValidationMeta("invalid release status", map[string]string{
			"status": "must be completed, cancelled or no_show",
		})
	}
	released, err := s.reservations.Release(ctx, id, status)
	if err != nil {
		return nil, nil, err
	}

	if released.TableID == "" {
		return released, nil, nil
	}
	offered, err := s.OfferNextForTable(ctx, released.TableID, released.Window.Date, released.Window.StartClock())
	if err != nil {
		// The release already committed; a waitlist hiccup must not undo it.
		zlog.Warn().Err(err).Str("table_id", released.TableID).Msg("waitlist consult after release failed")
		return released, nil, nil
	}
	return released, offered, nil
}
