package domain

import (
	"sort"
	"strings"
)

// Scoring dimension keys, as reported in a score breakdown.
const (
	DimCapacityFit   = "capacity_fit"
	DimAreaMatch     = "area_match"
	DimShapeMatch    = "shape_match"
	DimLocationMatch = "location_match"
	DimAccessibility = "accessibility"
)

const DefaultMaxAlternatives = 5

// TableScore is one eligible table's total score in [0,100] with its
// per-dimension sub-scores.
type TableScore struct {
	Table     Table              `json:"table"`
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Eligible applies the hard constraints: the party must fall inside the
// table's capacity range, and an accessibility requirement excludes
// non-accessible tables outright.
func Eligible(req AssignmentRequest, t Table) bool {
	if !t.Fits(req.PartySize) {
		return false
	}
	if req.Accessible && !t.Accessible {
		return false
	}
	return true
}

// ScoreTable computes the soft-preference score for a single table. The total
// is the unweighted average of the sub-scores applicable to this request:
// capacity fit always counts, each preference dimension counts only when the
// caller specified it. The accessibility sub-score is reported as a neutral 50
// when accessibility was not requested but is kept out of the average, so a
// request with no preferences ranks purely on capacity fit.
func ScoreTable(req AssignmentRequest, t Table) TableScore {
	breakdown := make(map[string]float64, 5)

	capacityFit := 0.0
	if t.Capacity > 0 {
		// 100 * (1 - (capacity-party)/capacity): tighter fit scores higher.
		capacityFit = 100 * float64(req.PartySize) / float64(t.Capacity)
	}
	breakdown[DimCapacityFit] = capacityFit
	total := capacityFit
	dims := 1

	if req.WantsArea() {
		v := 0.0
		if t.AreaID == req.AreaID {
			v = 100
		}
		breakdown[DimAreaMatch] = v
		total += v
		dims++
	}
	if req.WantsShape() {
		v := 0.0
		if t.Shape == req.Shape {
			v = 100
		}
		breakdown[DimShapeMatch] = v
		total += v
		dims++
	}
	if req.WantsLocation() {
		v := 0.0
		if strings.Contains(strings.ToLower(t.AreaName), strings.ToLower(strings.TrimSpace(req.Location))) {
			v = 100
		}
		breakdown[DimLocationMatch] = v
		total += v
		dims++
	}
	if req.Accessible {
		// Eligibility already excluded non-accessible tables here.
		breakdown[DimAccessibility] = 100
		total += 100
		dims++
	} else {
		breakdown[DimAccessibility] = 50
	}

	return TableScore{Table: t, Total: total / float64(dims), Breakdown: breakdown}
}

// RankTables filters free tables through the hard constraints, scores the
// survivors and returns them best-first. Ties break on smaller capacity (least
// wasted seats), then on table id, so the ranking never depends on input
// order.
func RankTables(req AssignmentRequest, free []Table) []TableScore {
	scored := make([]TableScore, 0, len(free))
	for _, t := range free {
		if !Eligible(req, t) {
			continue
		}
		scored = append(scored, ScoreTable(req, t))
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Total != scored[j].Total {
			return scored[i].Total > scored[j].Total
		}
		if scored[i].Table.Capacity != scored[j].Table.Capacity {
			return scored[i].Table.Capacity < scored[j].Table.Capacity
		}
		return scored[i].Table.ID < scored[j].Table.ID
	})
	return scored
}

// SelectTable returns the winner and up to maxAlternatives runners-up, or
// (nil, nil) when no table passes the hard constraints.
func SelectTable(req AssignmentRequest, free []Table, maxAlternatives int) (*TableScore, []TableScore) {
	if maxAlternatives <= 0 {
		maxAlternatives = DefaultMaxAlternatives
	}
	ranked := RankTables(req, free)
	if len(ranked) == 0 {
		return nil, nil
	}
	best := ranked[0]
	alts := ranked[1:]
	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}
	return &best, alts
}
