// Package universe defines the immutable data model for the Spindlespace
// setting: positions, star systems, rails, schedules, and the Galaxy
// aggregate that holds them.
//
// All entity types are value types produced in one generation pass and
// never mutated afterwards. "Updates" construct new values (see
// [Rail.WithNextFire] and [Galaxy.WithRails]), so shared galaxies are safe
// to query from any number of goroutines without locking.
package universe
