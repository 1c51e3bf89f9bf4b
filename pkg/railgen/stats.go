package railgen

import (
	"time"

	"github.com/spindlespace/spindle/pkg/universe"
)

// NetworkStats summarizes a generated rail network for reporting.
type NetworkStats struct {
	Systems          int                        `json:"systems"`
	ConnectedSystems int                        `json:"connected_systems"`
	Rails            int                        `json:"rails"`
	RailsByClass     map[universe.RailClass]int `json:"rails_by_class"`
	TotalLength      float64                    `json:"total_length_ly"`
	TotalCost        float64                    `json:"total_gravitium_cost"`
	TotalDeposits    float64                    `json:"total_gravitium_deposits"`
	FirstCompletion  time.Time                  `json:"first_completion,omitzero"`
	LastCompletion   time.Time                  `json:"last_completion,omitzero"`
}

// Stats computes summary statistics over a galaxy's rail network.
func Stats(g *universe.Galaxy) NetworkStats {
	stats := NetworkStats{
		Systems:          len(g.Systems()),
		ConnectedSystems: len(g.ConnectedSystems()),
		RailsByClass:     make(map[universe.RailClass]int),
		TotalDeposits:    g.TotalGravitiumDeposits(),
	}
	for _, r := range g.Rails() {
		stats.Rails++
		stats.RailsByClass[r.Class]++
		stats.TotalLength += r.Length
		stats.TotalCost += r.GravitiumCost
		if stats.FirstCompletion.IsZero() || r.ConstructionDate.Before(stats.FirstCompletion) {
			stats.FirstCompletion = r.ConstructionDate
		}
		if r.ConstructionDate.After(stats.LastCompletion) {
			stats.LastCompletion = r.ConstructionDate
		}
	}
	return stats
}
