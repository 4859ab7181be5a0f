package booking

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/dineflow/table-service/internal/domain"
	"github.com/dineflow/table-service/internal/metrics"
)

type EnqueueCmd struct {
	CustomerID    string
	Date          string
	PartySize     int
	PreferredTime string // optional HH:MM
	AreaID        string // optional
	Priority      *int   // optional override
}

// EnqueueWaitlist creates a waiting entry for a request that could not be
// seated. Priority derives from party size and the customer's VIP flag unless
// the command overrides it.
func (s *Service) EnqueueWaitlist(ctx context.Context, cmd EnqueueCmd) (*domain.WaitlistEntry, error) {
	if strings.TrimSpace(cmd.CustomerID) == "" {
		return nil, domain.ErrValidation("customer_id is required")
	}
	customer, err := s.customers.GetByID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewWaitlistEntry(*customer, cmd.Date, cmd.PartySize, cmd.PreferredTime, cmd.AreaID, cmd.Priority, s.opts.WaitlistTTL, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.waitlist.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// OfferNextForTable finds the best waiting entry for a freed table and
// transitions it to offered. The waiting set is snapshotted and sorted under a
// single read; the expiry deadline is re-validated at the moment of offering.
// Returns (nil, nil) when no entry qualifies.
func (s *Service) OfferNextForTable(ctx context.Context, tableID, date, availableTime string) (*domain.WaitlistEntry, error) {
	table, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseClock(availableTime); err != nil {
		return nil, err
	}

	entries, err := s.waitlist.ListWaiting(ctx, d)
	if err != nil {
		return nil, err
	}

	criteria := domain.OfferCriteria{
		TableCapacity: table.Capacity,
		Date:          d,
		AvailableTime: availableTime,
		AreaID:        table.AreaID,
	}
	now := s.clock.Now()
	eligible := entries[:0:0]
	for _, e := range entries {
		if e.EligibleFor(criteria, now) {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	domain.SortEntries(eligible)
	head := eligible[0]

	// Deadline re-check at the offer moment, in case the snapshot aged.
	if head.Overdue(s.clock.Now()) {
		return nil, nil
	}
	if err := head.Offer(tableID, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.waitlist.Update(ctx, head); err != nil {
		return nil, err
	}
	metrics.RecordWaitlistOffer()

	if err := s.notify.WaitlistOffered(ctx, head, tableID); err != nil {
		zlog.Warn().Err(err).Str("entry_id", head.ID).Msg("waitlist offer notification failed")
	}
	return head, nil
}

// OfferEntry offers a specific entry a table, regardless of queue position.
// Fails with invalid_state when the entry is not waiting.
func (s *Service) OfferEntry(ctx context.Context, entryID, tableID string) (*domain.WaitlistEntry, error) {
	entry, err := s.waitlist.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.tables.GetByID(ctx, tableID); err != nil {
		return nil, err
	}
	if err := entry.Offer(tableID, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.waitlist.Update(ctx, entry); err != nil {
		return nil, err
	}
	metrics.RecordWaitlistOffer()

	if err := s.notify.WaitlistOffered(ctx, entry, tableID); err != nil {
		zlog.Warn().Err(err).Str("entry_id", entry.ID).Msg("waitlist offer notification failed")
	}
	return entry, nil
}

// DeclineOffer marks an offered entry as declined.
func (s *Service) DeclineOffer(ctx context.Context, entryID string) (*domain.WaitlistEntry, error) {
	entry, err := s.waitlist.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.Decline(); err != nil {
		return nil, err
	}
	if err := s.waitlist.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ExpireWaitlist sweeps overdue waiting entries. Idempotent: a second run
// right after the first reports zero.
func (s *Service) ExpireWaitlist(ctx context.Context) (int, error) {
	n, err := s.waitlist.ExpireOverdue(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.RecordWaitlistExpired(n)
		zlog.Info().Int("count", n).Msg("waitlist entries expired")
	}
	return n, nil
}
