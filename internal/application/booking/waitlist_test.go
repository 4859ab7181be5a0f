package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dineflow/table-service/internal/domain"
)

func TestEnqueueWaitlist(t *testing.T) {
	now := mustTime(t, "2026-09-05T17:00:00Z")

	t.Run("derives_priority_from_party_size_and_vip", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		f.customers.byID["c-vip"] = domain.Customer{ID: "c-vip", Name: "Vera", VIP: true}

		entry, err := f.svc.EnqueueWaitlist(context.Background(), EnqueueCmd{
			CustomerID: "c-vip",
			Date:       "2026-09-05",
			PartySize:  8,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.WaitlistWaiting, entry.Status)
		assert.Equal(t, 7, entry.Priority) // 8/4 + VIP bonus
		assert.Equal(t, now, entry.CreatedAt)
		assert.Equal(t, now.Add(domain.DefaultWaitlistTTL), entry.ExpiresAt)

		stored, err := f.waitlist.GetByID(context.Background(), entry.ID)
		assert.NoError(t, err)
		assert.Equal(t, entry.Priority, stored.Priority)
	})

	t.Run("honors_priority_override", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		f.customers.byID["c1"] = domain.Customer{ID: "c1", Name: "Omar"}

		p := 42
		entry, err := f.svc.EnqueueWaitlist(context.Background(), EnqueueCmd{
			CustomerID: "c1",
			Date:       "2026-09-05",
			PartySize:  2,
			Priority:   &p,
		})
		assert.NoError(t, err)
		assert.Equal(t, 42, entry.Priority)
	})

	t.Run("rejects_unknown_customer", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		_, err := f.svc.EnqueueWaitlist(context.Background(), EnqueueCmd{
			CustomerID: "ghost",
			Date:       "2026-09-05",
			PartySize:  2,
		})
		var ae *domain.AppError
		if assert.ErrorAs(t, err, &ae) {
			assert.Equal(t, domain.CodeNotFound, ae.Code)
		}
	})

	t.Run("rejects_blank_customer_id", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		_, err := f.svc.EnqueueWaitlist(context.Background(), EnqueueCmd{
			CustomerID: "  ",
			Date:       "2026-09-05",
			PartySize:  2,
		})
		var ae *domain.AppError
		if assert.ErrorAs(t, err, &ae) {
			assert.Equal(t, domain.CodeValidation, ae.Code)
		}
	})
}

func seedEntry(t *testing.T, f *fixture, customer domain.Customer, date string, partySize int, preferredTime, areaID string, createdAt time.Time) *domain.WaitlistEntry {
	t.Helper()
	entry, err := domain.NewWaitlistEntry(customer, date, partySize, preferredTime, areaID, nil, domain.DefaultWaitlistTTL, createdAt)
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	if err := f.waitlist.Create(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return entry
}

func TestOfferNextForTable(t *testing.T) {
	now := mustTime(t, "2026-09-05T18:00:00Z")

	t.Run("offers_highest_priority_then_oldest", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		older := seedEntry(t, f, domain.Customer{ID: "c1"}, "2026-09-05", 2, "", "", now.Add(-30*time.Minute))
		vip := seedEntry(t, f, domain.Customer{ID: "c2", VIP: true}, "2026-09-05", 2, "", "", now.Add(-10*time.Minute))
		_ = older

		offered, err := f.svc.OfferNextForTable(context.Background(), "t4", "2026-09-05", "19:00")
		assert.NoError(t, err)
		if assert.NotNil(t, offered) {
			assert.Equal(t, vip.ID, offered.ID)
			assert.Equal(t, domain.WaitlistOffered, offered.Status)
			assert.Equal(t, "t4", offered.OfferedTable)
		}
	})

	t.Run("skips_entries_the_table_cannot_seat", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		seedEntry(t, f, domain.Customer{ID: "big", VIP: true}, "2026-09-05", 6, "", "", now.Add(-time.Hour))
		small := seedEntry(t, f, domain.Customer{ID: "small"}, "2026-09-05", 2, "", "", now)

		offered, err := f.svc.OfferNextForTable(context.Background(), "t2", "2026-09-05", "19:00")
		assert.NoError(t, err)
		if assert.NotNil(t, offered) {
			assert.Equal(t, small.ID, offered.ID)
		}
	})

	t.Run("skips_entries_preferring_a_far_hour", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		seedEntry(t, f, domain.Customer{ID: "late"}, "2026-09-05", 2, "22:30", "", now.Add(-time.Hour))

		offered, err := f.svc.OfferNextForTable(context.Background(), "t4", "2026-09-05", "19:00")
		assert.NoError(t, err)
		assert.Nil(t, offered)
	})

	t.Run("skips_entries_pinned_to_another_area", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		seedEntry(t, f, domain.Customer{ID: "patio-only"}, "2026-09-05", 2, "", "patio", now.Add(-time.Hour))

		offered, err := f.svc.OfferNextForTable(context.Background(), "t4", "2026-09-05", "19:00")
		assert.NoError(t, err)
		assert.Nil(t, offered)
	})

	t.Run("none_waiting_returns_nil_without_error", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		offered, err := f.svc.OfferNextForTable(context.Background(), "t4", "2026-09-05", "19:00")
		assert.NoError(t, err)
		assert.Nil(t, offered)
	})

	t.Run("unknown_table_fails", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		_, err := f.svc.OfferNextForTable(context.Background(), "nope", "2026-09-05", "19:00")
		var ae *domain.AppError
		if assert.ErrorAs(t, err, &ae) {
			assert.Equal(t, domain.CodeNotFound, ae.Code)
		}
	})
}

func TestOfferEntry(t *testing.T) {
	now := mustTime(t, "2026-09-05T18:00:00Z")

	t.Run("offers_out_of_turn", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		entry := seedEntry(t, f, domain.Customer{ID: "c1"}, "2026-09-05", 2, "", "", now)

		offered, err := f.svc.OfferEntry(context.Background(), entry.ID, "t6")
		assert.NoError(t, err)
		assert.Equal(t, domain.WaitlistOffered, offered.Status)
		assert.Equal(t, "t6", offered.OfferedTable)
		assert.Equal(t, []string{entry.ID + "/t6"}, f.notifier.offered)
	})

	t.Run("offering_twice_is_invalid_state", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		entry := seedEntry(t, f, domain.Customer{ID: "c1"}, "2026-09-05", 2, "", "", now)

		_, err := f.svc.OfferEntry(context.Background(), entry.ID, "t6")
		assert.NoError(t, err)
		_, err = f.svc.OfferEntry(context.Background(), entry.ID, "t6")
		var ae *domain.AppError
		if assert.ErrorAs(t, err, &ae) {
			assert.Equal(t, domain.CodeInvalidState, ae.Code)
		}
	})
}

func TestDeclineOffer(t *testing.T) {
	now := mustTime(t, "2026-09-05T18:00:00Z")

	t.Run("declines_an_offered_entry", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		entry := seedEntry(t, f, domain.Customer{ID: "c1"}, "2026-09-05", 2, "", "", now)
		_, err := f.svc.OfferEntry(context.Background(), entry.ID, "t6")
		assert.NoError(t, err)

		declined, err := f.svc.DeclineOffer(context.Background(), entry.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.WaitlistDeclined, declined.Status)
	})

	t.Run("declining_a_waiting_entry_is_invalid_state", func(t *testing.T) {
		f := newFixture(t, now, standardTables()...)
		entry := seedEntry(t, f, domain.Customer{ID: "c1"}, "2026-09-05", 2, "", "", now)

		_, err := f.svc.DeclineOffer(context.Background(), entry.ID)
		var ae *domain.AppError
		if assert.ErrorAs(t, err, &ae) {
			assert.Equal(t, domain.CodeInvalidState, ae.Code)
		}
	})
}

func TestExpireWaitlist(t *testing.T) {
	created := mustTime(t, "2026-09-05T10:00:00Z")
	late := created.Add(domain.DefaultWaitlistTTL + time.Minute)

	f := newFixture(t, late, standardTables()...)
	stale := seedEntry(t, f, domain.Customer{ID: "c1"}, "2026-09-05", 2, "", "", created)
	fresh, err := domain.NewWaitlistEntry(domain.Customer{ID: "c2"}, "2026-09-05", 2, "", "", nil, domain.DefaultWaitlistTTL, late)
	assert.NoError(t, err)
	assert.NoError(t, f.waitlist.Create(context.Background(), fresh))

	n, err := f.svc.ExpireWaitlist(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.waitlist.GetByID(context.Background(), stale.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.WaitlistExpired, got.Status)

	got, err = f.waitlist.GetByID(context.Background(), fresh.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.WaitlistWaiting, got.Status)

	// A second sweep finds nothing left to expire.
	n, err = f.svc.ExpireWaitlist(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	// The expired entry never reaches an offer; the fresh one does.
	offered, err := f.svc.OfferNextForTable(context.Background(), "t4", "2026-09-05", "19:00")
	assert.NoError(t, err)
	if assert.NotNil(t, offered) {
		assert.Equal(t, fresh.ID, offered.ID)
	}
}
