package booking

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// StartExpiryWorker sweeps overdue waitlist entries on a fixed interval until
// ctx is canceled. The HTTP expire endpoint stays available for external
// schedulers; running both is safe because the sweep is idempotent.
func (s *Service) StartExpiryWorker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		log := zlog.With().Str("component", "waitlist_expiry_worker").Logger()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopped")
				return
			case <-ticker.C:
				if _, err := s.ExpireWaitlist(ctx); err != nil {
					log.Warn().Err(err).Msg("expiry sweep failed")
				}
			}
		}
	}()
}
