package universe

import (
	"encoding/json"
	"fmt"
)

// StarType is a stellar classification code.
type StarType string

// Stellar classes, main sequence plus compact remnants.
const (
	StarO  StarType = "O"
	StarB  StarType = "B"
	StarA  StarType = "A"
	StarF  StarType = "F"
	StarG  StarType = "G"
	StarK  StarType = "K"
	StarM  StarType = "M"
	StarWD StarType = "WD" // white dwarf
	StarNS StarType = "NS" // neutron star
	StarBH StarType = "BH" // black hole
)

// PlanetClass is a broad planetary category.
type PlanetClass string

// Planet classes.
const (
	PlanetTerrestrial PlanetClass = "terrestrial"
	PlanetOcean       PlanetClass = "ocean"
	PlanetDesert      PlanetClass = "desert"
	PlanetIce         PlanetClass = "ice"
	PlanetGasGiant    PlanetClass = "gas_giant"
	PlanetIceGiant    PlanetClass = "ice_giant"
	PlanetAsteroid    PlanetClass = "asteroid"
)

// TechTier is an ordered civilization development level. Higher values are
// strictly more advanced; ordinary integer comparison is meaningful.
type TechTier int

// Development tiers from pre-industrial to post-physical.
const (
	TierPrimitive TechTier = iota
	TierIndustrial
	TierNuclear
	TierFusion
	TierAntimatter
	TierRailAge
	TierSingularity
	TierTranscendent
)

// tierNames maps tiers to their serialized names.
var tierNames = map[TechTier]string{
	TierPrimitive:    "primitive",
	TierIndustrial:   "industrial",
	TierNuclear:      "nuclear",
	TierFusion:       "fusion",
	TierAntimatter:   "antimatter",
	TierRailAge:      "rail_age",
	TierSingularity:  "singularity",
	TierTranscendent: "transcendent",
}

// String returns the lowercase tier name, or "unknown" for out-of-range values.
func (t TechTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON serializes the tier as its name rather than a bare integer,
// keeping snapshots readable and stable if tiers are ever reordered.
func (t TechTier) MarshalJSON() ([]byte, error) {
	name, ok := tierNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown tech tier %d", int(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON accepts a tier name.
func (t *TechTier) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for tier, n := range tierNames {
		if n == name {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown tech tier %q", name)
}

// CanBuildRails reports whether the tier is advanced enough to construct
// rail infrastructure without outside assistance.
func (t TechTier) CanBuildRails() bool { return t >= TierRailAge }
