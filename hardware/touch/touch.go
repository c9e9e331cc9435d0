// Package touch reads capacitive touch electrodes.
//
// A touch is a level check on the raw reading, not an edge: callers poll
// Measure() and compare against their threshold each cycle.
package touch

// Sensor is one touch channel. Measure returns an oversampled raw
// proximity reading, bigger means closer.
type Sensor interface {
	Measure() (int32, error)
	String() string
	Close() error
}
