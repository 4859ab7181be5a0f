package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dineflow/table-service/internal/domain"
)

func TestAssignTable_CommitsBestTable(t *testing.T) {
	now := mustTime(t, "2026-09-01T10:00:00Z")
	f := newFixture(t, now, standardTables()...)
	req := mustReq(t, "2026-09-05", "19:00", 4)

	res, err := f.svc.AssignTable(context.Background(), req)
	assert.NoError(t, err)
	assert.True(t, res.Assigned)
	assert.Equal(t, "t4", res.Table.ID)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, 100.0, res.Breakdown[domain.DimCapacityFit])

	assert.NotNil(t, res.Reservation)
	assert.NotEmpty(t, res.Reservation.ID)
	assert.Equal(t, "t4", res.Reservation.TableID)
	assert.Equal(t, domain.StatusConfirmed, res.Reservation.Status)
	assert.Equal(t, now, res.Reservation.CreatedAt)
	assert.Equal(t, 1, f.reservations.commits)
	assert.Equal(t, []string{res.Reservation.ID}, f.notifier.assigned)
}

func TestAssignTable_ReportsAlternatives(t *testing.T) {
	now := mustTime(t, "2026-09-01T10:00:00Z")
	f := newFixture(t, now, standardTables()...)
	req := mustReq(t, "2026-09-05", "19:00", 2)

	res, err := f.svc.AssignTable(context.Background(), req)
	assert.NoError(t, err)
	assert.True(t, res.Assigned)
	assert.Equal(t, "t2", res.Table.ID)
	if assert.Len(t, res.Alternatives, 2) {
		assert.Equal(t, "t4", res.Alternatives[0].Table.ID)
		assert.Equal(t, "t6", res.Alternatives[1].Table.ID)
	}
}

// staleReservations serves an empty availability snapshot while the committed
// set still holds a blocking reservation. AssignTable must trust the commit
// verdict, not the snapshot.
type staleReservations struct {
	*memReservations
}

func (m *staleReservations) ListActiveForDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	return nil, nil
}

func TestAssignTable_ConflictAtCommitIsAuthoritative(t *testing.T) {
	now := mustTime(t, "2026-09-01T10:00:00Z")
	store := newMemReservations()
	w, err := domain.NewTimeWindow("2026-09-05", "19:00", 120)
	assert.NoError(t, err)
	store.add(domain.Reservation{
		ID: "r-existing", TableID: "t4", Window: w,
		PartySize: 4, Status: domain.StatusConfirmed,
	})
	stale := &staleReservations{memReservations: store}

	tables := &memTables{tables: []domain.Table{
		{ID: "t4", AreaID: "main", AreaName: "Main Dining", Capacity: 4, MinCapacity: 2, Shape: domain.ShapeRound, Active: true},
	}}
	notifier := &recordingNotifier{}
	svc := New(tables, stale, &memMaintenance{}, newMemWaitlist(), &memCustomers{byID: map[string]domain.Customer{}}, nil, notifier, fakeClock{t: now}, Options{})

	res, err := svc.AssignTable(context.Background(), mustReq(t, "2026-09-05", "20:00", 4))
	assert.Nil(t, res)
	var ae *domain.AppError
	if assert.ErrorAs(t, err, &ae) {
		assert.Equal(t, domain.CodeConflict, ae.Code)
	}
	assert.Empty(t, notifier.assigned)
	assert.Equal(t, 0, store.commits)
}

func TestAssignTable_NoSingleTable_ProposesCombinations(t *testing.T) {
	now := mustTime(t, "2026-09-01T10:00:00Z")
	f := newFixture(t, now,
		domain.Table{ID: "a", AreaID: "main", Capacity: 4, MinCapacity: 1, Active: true},
		domain.Table{ID: "b", AreaID: "main", Capacity: 4, MinCapacity: 1, Active: true},
		domain.Table{ID: "c", AreaID: "main", Capacity: 3, MinCapacity: 1, Active: true},
	)

	res, err := f.svc.AssignTable(context.Background(), mustReq(t, "2026-09-05", "19:00", 10))
	assert.NoError(t, err)
	assert.False(t, res.Assigned)
	assert.Equal(t, ReasonNoSingleTable, res.Reason)
	assert.Nil(t, res.Reservation)
	assert.Equal(t, 0, f.reservations.commits)

	if assert.Len(t, res.Combinations, 1) {
		combo := res.Combinations[0]
		assert.Equal(t, 11, combo.TotalCapacity)
		assert.Equal(t, 1, combo.Waste)
		assert.Len(t, combo.Tables, 3)
	}
	assert.Empty(t, res.AlternativeTimes)
}

func TestAssignTable_SlotFull_SuggestsAlternativeTimes(t *testing.T) {
	now := mustTime(t, "2026-09-01T10:00:00Z")
	f := newFixture(t, now,
		domain.Table{ID: "t1", AreaID: "main", Capacity: 2, MinCapacity: 1, Active: true},
	)
	w, err := domain.NewTimeWindow("2026-09-05", "19:00", 120)
	assert.NoError(t, err)
	f.reservations.add(domain.Reservation{
		ID: "r1", TableID: "t1", Window: w, PartySize: 2, Status: domain.StatusConfirmed,
	})

	res, err := f.svc.AssignTable(context.Background(), mustReq(t, "2026-09-05", "20:00", 2))
	assert.NoError(t, err)
	assert.False(t, res.Assigned)
	assert.Equal(t, ReasonNoTablesFree, res.Reason)
	assert.Empty(t, res.Combinations)

	assert.NotEmpty(t, res.AlternativeTimes)
	first := res.AlternativeTimes[0]
	assert.True(t, first.Available)
	assert.Equal(t, "21:00", first.Time)
}

func TestAssignTable_NeverSeatsPartyAboveCapacity(t *testing.T) {
	now := mustTime(t, "2026-09-01T10:00:00Z")
	f := newFixture(t, now,
		domain.Table{ID: "t2", AreaID: "main", Capacity: 2, MinCapacity: 1, Active: true},
	)

	res, err := f.svc.AssignTable(context.Background(), mustReq(t, "2026-09-05", "19:00", 4))
	assert.NoError(t, err)
	assert.False(t, res.Assigned)
	assert.Equal(t, 0, f.reservations.commits)
}

func TestProposeCombination(t *testing.T) {
	now := mustTime(t, "2026-09-01T10:00:00Z")
	f := newFixture(t, now, standardTables()...)

	combos, err := f.svc.ProposeCombination(context.Background(), mustReq(t, "2026-09-05", "19:00", 8))
	assert.NoError(t, err)
	assert.NotEmpty(t, combos)
	for _, c := range combos {
		assert.GreaterOrEqual(t, c.TotalCapacity, 8)
		assert.Equal(t, c.TotalCapacity-8, c.Waste)
	}
}

func TestReleaseReservation(t *testing.T) {
	t.Run("rejects_non_terminal_status", func(t *testing.T) {
		f := newFixture(t, mustTime(t, "2026-09-01T10:00:00Z"), standardTables()...)
		_, _, err := f.svc.ReleaseReservation(context.Background(), "r1", domain.StatusSeated)
		var ae *domain.AppError
		if assert.ErrorAs(t, err, &ae) {
			assert.Equal(t, domain.CodeValidation, ae.Code)
		}
	})

	t.Run("releases_and_offers_next_waiting_entry", func(t *testing.T) {
		now := mustTime(t, "2026-09-05T18:00:00Z")
		f := newFixture(t, now, standardTables()...)
		w, err := domain.NewTimeWindow("2026-09-05", "19:00", 120)
		assert.NoError(t, err)
		f.reservations.add(domain.Reservation{
			ID: "r1", TableID: "t4", Window: w, PartySize: 4, Status: domain.StatusConfirmed,
		})
		entry, err := domain.NewWaitlistEntry(
			domain.Customer{ID: "c1", Name: "Iris"},
			"2026-09-05", 3, "19:30", "", nil, domain.DefaultWaitlistTTL, now,
		)
		assert.NoError(t, err)
		assert.NoError(t, f.waitlist.Create(context.Background(), entry))

		released, offered, err := f.svc.ReleaseReservation(context.Background(), "r1", domain.StatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, released.Status)
		if assert.NotNil(t, offered) {
			assert.Equal(t, entry.ID, offered.ID)
			assert.Equal(t, domain.WaitlistOffered, offered.Status)
			assert.Equal(t, "t4", offered.OfferedTable)
		}
		assert.Equal(t, []string{entry.ID + "/t4"}, f.notifier.offered)

		stored, err := f.waitlist.GetByID(context.Background(), entry.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.WaitlistOffered, stored.Status)
	})

	t.Run("releases_without_waiting_entries", func(t *testing.T) {
		now := mustTime(t, "2026-09-05T18:00:00Z")
		f := newFixture(t, now, standardTables()...)
		w, err := domain.NewTimeWindow("2026-09-05", "19:00", 120)
		assert.NoError(t, err)
		f.reservations.add(domain.Reservation{
			ID: "r1", TableID: "t2", Window: w, PartySize: 2, Status: domain.StatusConfirmed,
		})

		released, offered, err := f.svc.ReleaseReservation(context.Background(), "r1", domain.StatusCompleted)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, released.Status)
		assert.Nil(t, offered)
	})
}
