package worldgen

import "fmt"

// Defaults for galaxy shape. The disc is flattened: vertical spread is a
// tenth of the radius, and systems keep a minimum spacing of a tenth of
// the radius so clusters stay legible on a map.
const (
	DefaultSystemCount   = 50
	DefaultRadius        = 100.0
	DefaultSpacingFactor = 0.1
	DefaultFlattening    = 0.1
)

// Options configures world generation. The zero value is usable:
// ValidateAndSetDefaults fills every field.
type Options struct {
	// SystemCount is how many star systems to place.
	SystemCount int `json:"system_count,omitempty" toml:"system_count"`

	// Radius is the galactic disc radius in light-years.
	Radius float64 `json:"radius,omitempty" toml:"radius"`

	// SpacingFactor sets the minimum distance between systems as a
	// fraction of the radius.
	SpacingFactor float64 `json:"spacing_factor,omitempty" toml:"spacing_factor"`

	// Flattening sets the vertical spread as a fraction of the radius.
	Flattening float64 `json:"flattening,omitempty" toml:"flattening"`

	// NamePrefix prefixes generated system names.
	NamePrefix string `json:"name_prefix,omitempty" toml:"name_prefix"`

	validated bool
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// out-of-range values. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.SystemCount == 0 {
		o.SystemCount = DefaultSystemCount
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.SpacingFactor == 0 {
		o.SpacingFactor = DefaultSpacingFactor
	}
	if o.Flattening == 0 {
		o.Flattening = DefaultFlattening
	}
	if o.NamePrefix == "" {
		o.NamePrefix = "System"
	}

	if o.SystemCount < 0 {
		return fmt.Errorf("system count must not be negative: %d", o.SystemCount)
	}
	if o.Radius <= 0 {
		return fmt.Errorf("radius must be positive: %f", o.Radius)
	}
	if o.SpacingFactor < 0 || o.SpacingFactor >= 1 {
		return fmt.Errorf("spacing factor must be in [0, 1): %f", o.SpacingFactor)
	}
	if o.Flattening <= 0 || o.Flattening > 1 {
		return fmt.Errorf("flattening must be in (0, 1]: %f", o.Flattening)
	}

	o.validated = true
	return nil
}
