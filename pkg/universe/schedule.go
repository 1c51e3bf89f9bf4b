package universe

import "time"

// TransitTime is the constant time a traveler spends inside a spindle
// once a firing departs. Transit is near-instantaneous relative to firing
// intervals; the hour covers boarding and debarkation.
const TransitTime = time.Hour

// Schedule is the derived, time-ascending departure sequence for one rail
// inside a query window. It is never primary data: the same sequence can
// always be recomputed from the rail's (interval, next fire) anchor.
type Schedule struct {
	RailID     string
	Departures []time.Time
	Transit    time.Duration
}

// NextDeparture returns the first departure strictly after the given
// time, or false if the window holds none.
func (s Schedule) NextDeparture(after time.Time) (time.Time, bool) {
	for _, d := range s.Departures {
		if d.After(after) {
			return d, true
		}
	}
	return time.Time{}, false
}
