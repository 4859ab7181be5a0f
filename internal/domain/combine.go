package domain

import (
	"sort"
	"strings"
)

const DefaultMaxCombinations = 3

// Combination is a set of free tables whose summed capacity covers a party
// that no single table can seat.
type Combination struct {
	Tables        []Table `json:"tables"`
	TotalCapacity int     `json:"total_capacity"`
	Waste         int     `json:"waste"`
}

func (c Combination) key() string {
	ids := make([]string, len(c.Tables))
	for i, t := range c.Tables {
		ids[i] = t.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// CombineTables searches multi-table seatings for partySize. Free tables are
// sorted by capacity descending; each table seeds a greedy run that appends
// subsequent tables until the running capacity covers the party. Combinations
// with the same table set are deduplicated. Returns at most maxCombinations,
// ordered by (wasted capacity asc, table count asc).
func CombineTables(partySize int, free []Table, maxCombinations int) []Combination {
	if maxCombinations <= 0 {
		maxCombinations = DefaultMaxCombinations
	}

	sorted := make([]Table, len(free))
	copy(sorted, free)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Capacity != sorted[j].Capacity {
			return sorted[i].Capacity > sorted[j].Capacity
		}
		return sorted[i].ID < sorted[j].ID
	})

	var combos []Combination
	seen := make(map[string]bool)

	for seed := range sorted {
		sum := 0
		var members []Table
		for i := seed; i < len(sorted); i++ {
			members = append(members, sorted[i])
			sum += sorted[i].Capacity
			if sum >= partySize {
				break
			}
		}
		if sum < partySize {
			continue
		}
		c := Combination{
			Tables:        append([]Table(nil), members...),
			TotalCapacity: sum,
			Waste:         sum - partySize,
		}
		if k := c.key(); !seen[k] {
			seen[k] = true
			combos = append(combos, c)
		}
	}

	sort.Slice(combos, func(i, j int) bool {
		if combos[i].Waste != combos[j].Waste {
			return combos[i].Waste < combos[j].Waste
		}
		if len(combos[i].Tables) != len(combos[j].Tables) {
			return len(combos[i].Tables) < len(combos[j].Tables)
		}
		return combos[i].key() < combos[j].key()
	})
	if len(combos) > maxCombinations {
		combos = combos[:maxCombinations]
	}
	return combos
}
