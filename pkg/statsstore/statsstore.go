// Package statsstore holds what the correction counters share across
// backends. Counters are keyed by application and direction; the corrected
// text itself is never stored.
package statsstore

// UnknownApp is recorded when the process name could not be resolved.
const UnknownApp = "unknown"

func AppKey(app string) string {
	if app == "" {
		return UnknownApp
	}
	return app
}

// Counts maps app to direction to number of corrections.
type Counts map[string]map[string]int64

func (c Counts) Add(app, direction string, n int64) {
	app = AppKey(app)
	byDirection, ok := c[app]
	if !ok {
		byDirection = make(map[string]int64)
		c[app] = byDirection
	}
	byDirection[direction] += n
}

// Totals sums the counters of every app per direction.
func (c Counts) Totals() map[string]int64 {
	totals := make(map[string]int64)
	for _, byDirection := range c {
		for direction, n := range byDirection {
			totals[direction] += n
		}
	}
	return totals
}

func (c Counts) ForApp(app string) map[string]int64 {
	out := make(map[string]int64)
	for direction, n := range c[AppKey(app)] {
		out[direction] = n
	}
	return out
}
