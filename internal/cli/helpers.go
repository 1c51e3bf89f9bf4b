package cli

import (
	"fmt"
	"time"

	"github.com/spindlespace/spindle/pkg/errors"
	"github.com/spindlespace/spindle/pkg/snapshot"
	"github.com/spindlespace/spindle/pkg/universe"
)

// loadSnapshot validates the path and reads a galaxy snapshot from it.
func loadSnapshot(path string) (*universe.Galaxy, error) {
	if err := errors.ValidateSnapshotPath(path); err != nil {
		return nil, err
	}
	g, err := snapshot.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return g, nil
}

// parseDepart parses a departure time flag. Accepts RFC 3339 timestamps and
// bare dates; an empty value yields the fallback.
func parseDepart(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate,
		"invalid departure time %q (want RFC 3339 or YYYY-MM-DD)", s)
}

// departDefault picks a sensible default departure: the latest rail
// completion so every line is in service, falling back to the galaxy's
// generation time for networks without rails.
func departDefault(g *universe.Galaxy) time.Time {
	depart := g.GenerationTime
	for _, r := range g.Rails() {
		if r.ConstructionDate.After(depart) {
			depart = r.ConstructionDate
		}
	}
	return depart
}
