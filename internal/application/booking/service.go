package booking

import (
	"time"

	"github.com/dineflow/table-service/internal/domain"
)

// Options are the booking knobs. Zero values fall back to defaults.
type Options struct {
	MaxAlternatives      int
	MaxCombinations      int
	SuggestWindowMinutes int
	SuggestStepMinutes   int
	BestTimesStart       string // HH:MM, daily scan range for best-times mode
	BestTimesEnd         string
	WaitlistTTL          time.Duration
	AvailabilityTTL      time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAlternatives <= 0 {
		o.MaxAlternatives = domain.DefaultMaxAlternatives
	}
	if o.MaxCombinations <= 0 {
		o.MaxCombinations = domain.DefaultMaxCombinations
	}
	if o.SuggestWindowMinutes <= 0 {
		o.SuggestWindowMinutes = 120
	}
	if o.SuggestStepMinutes <= 0 {
		o.SuggestStepMinutes = 30
	}
	if o.BestTimesStart == "" {
		o.BestTimesStart = "18:00"
	}
	if o.BestTimesEnd == "" {
		o.BestTimesEnd = "23:00"
	}
	if o.WaitlistTTL <= 0 {
		o.WaitlistTTL = domain.DefaultWaitlistTTL
	}
	if o.AvailabilityTTL <= 0 {
		o.AvailabilityTTL = 2 * time.Minute
	}
	return o
}

type Service struct {
	tables       TableRepo
	reservations ReservationRepo
	maintenance  MaintenanceRepo
	waitlist     WaitlistRepo
	customers    CustomerRepo

	cache  Cache
	notify Notifier
	clock  Clock
	opts   Options
}

func New(
	tables TableRepo,
	reservations ReservationRepo,
	maintenance MaintenanceRepo,
	waitlist WaitlistRepo,
	customers CustomerRepo,
	cache Cache,
	notify Notifier,
	clock Clock,
	opts Options,
) *Service {
	if notify == nil {
		notify = NoopNotifier{}
	}
	return &Service{
		tables:       tables,
		reservations: reservations,
		maintenance:  maintenance,
		waitlist:     waitlist,
		customers:    customers,
		cache:        cache,
		notify:       notify,
		clock:        clock,
		opts:         opts.withDefaults(),
	}
}
