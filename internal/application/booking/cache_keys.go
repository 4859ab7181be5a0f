package booking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/dineflow/table-service/internal/domain"
)

// Deterministic key for an availability snapshot. Preference fields are
// excluded: they affect scoring, not which tables are free.
func cacheKeyAvailability(req domain.AssignmentRequest) string {
	raw := fmt.Sprintf("date=%s|time=%s|ps=%d|dur=%d|area=%s",
		req.Date, req.Time, req.PartySize, req.DurationMinutes, req.AreaID)

	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("availability:%s", hex.EncodeToString(hash[:]))
}
