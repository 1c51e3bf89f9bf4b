package railgen

import (
	"fmt"
	"time"
)

// Default policy values, matching the setting's canon: rail construction
// opens in 2800 CE at roughly ten light-years of spindle per year, and
// hub schedule optimization is anchored to the 3000 CE epoch.
const (
	// DefaultSourceVeinThreshold is the minimum gravitium deposit (tons)
	// for a system to seed the network.
	DefaultSourceVeinThreshold = 1000.0

	// DefaultRedundancyRadius is how far (light-years) a bottleneck
	// system may reach for a backup connection.
	DefaultRedundancyRadius = 50.0

	// DefaultRedundancyProbability is the chance a bottleneck system
	// receives a backup connection at all.
	DefaultRedundancyProbability = 0.15

	// DefaultConstructionRate is the build-out speed in light-years of
	// rail per year, driving the construction calendar.
	DefaultConstructionRate = 10.0
)

// DefaultConstructionStart is when rail construction begins.
var DefaultConstructionStart = time.Date(2800, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultOffsetEpoch is the synthetic base epoch for schedule offset
// optimization.
var DefaultOffsetEpoch = time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Policy holds the tunable knobs of network generation. The redundancy
// radius and probability are deliberate policy values rather than numbers
// derived from galaxy scale or density; adjust them per setting.
//
// The zero value is usable: ValidateAndSetDefaults fills every field.
type Policy struct {
	// SourceVeinThreshold is the minimum gravitium deposit for a system
	// to join the initial frontier.
	SourceVeinThreshold float64 `json:"source_vein_threshold,omitempty" toml:"source_vein_threshold"`

	// MaxSourceVeins caps how many source veins seed the frontier.
	// Zero means no cap.
	MaxSourceVeins int `json:"max_source_veins,omitempty" toml:"max_source_veins"`

	// RedundancyRadius is the search radius (LY) for backup connections.
	RedundancyRadius float64 `json:"redundancy_radius,omitempty" toml:"redundancy_radius"`

	// RedundancyProbability is the per-bottleneck chance of a backup
	// connection, in [0, 1].
	RedundancyProbability float64 `json:"redundancy_probability,omitempty" toml:"redundancy_probability"`

	// ConstructionRate is the build-out speed in LY of rail per year.
	ConstructionRate float64 `json:"construction_rate,omitempty" toml:"construction_rate"`

	// ConstructionStart is the date the first rail breaks ground.
	ConstructionStart time.Time `json:"construction_start,omitempty" toml:"construction_start"`

	// OffsetEpoch anchors schedule offset optimization.
	OffsetEpoch time.Time `json:"offset_epoch,omitempty" toml:"offset_epoch"`

	validated bool
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// out-of-range values. Idempotent.
func (p *Policy) ValidateAndSetDefaults() error {
	if p.validated {
		return nil
	}
	if p.SourceVeinThreshold == 0 {
		p.SourceVeinThreshold = DefaultSourceVeinThreshold
	}
	if p.RedundancyRadius == 0 {
		p.RedundancyRadius = DefaultRedundancyRadius
	}
	if p.RedundancyProbability == 0 {
		p.RedundancyProbability = DefaultRedundancyProbability
	}
	if p.ConstructionRate == 0 {
		p.ConstructionRate = DefaultConstructionRate
	}
	if p.ConstructionStart.IsZero() {
		p.ConstructionStart = DefaultConstructionStart
	}
	if p.OffsetEpoch.IsZero() {
		p.OffsetEpoch = DefaultOffsetEpoch
	}

	if p.SourceVeinThreshold < 0 {
		return fmt.Errorf("source vein threshold must not be negative: %f", p.SourceVeinThreshold)
	}
	if p.MaxSourceVeins < 0 {
		return fmt.Errorf("max source veins must not be negative: %d", p.MaxSourceVeins)
	}
	if p.RedundancyRadius < 0 {
		return fmt.Errorf("redundancy radius must not be negative: %f", p.RedundancyRadius)
	}
	if p.RedundancyProbability < 0 || p.RedundancyProbability > 1 {
		return fmt.Errorf("redundancy probability must be in [0, 1]: %f", p.RedundancyProbability)
	}
	if p.ConstructionRate <= 0 {
		return fmt.Errorf("construction rate must be positive: %f", p.ConstructionRate)
	}

	p.validated = true
	return nil
}
