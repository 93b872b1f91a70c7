package timekeeper

import "time"

// TickSource supplies ticks while a countdown is running.
// Acquire is called when the timer starts and the returned stop func when it stops.
type TickSource interface {
	Acquire(interval time.Duration) (ticks <-chan time.Time, stop func())
}

type tickerSource struct{}

// RealtimeTicks returns a TickSource backed by time.Ticker.
func RealtimeTicks() TickSource {
	return tickerSource{}
}

func (tickerSource) Acquire(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

// elapsedTicks converts the monotonic time since the last counted tick into a
// number of whole ticks, rounding to absorb scheduler jitter.
func elapsedTicks(elapsed, interval time.Duration, maxCatchUp int) int {
	if interval <= 0 || elapsed < interval/2 {
		return 0
	}
	count := int((elapsed + interval/2) / interval)
	if maxCatchUp > 0 && count > maxCatchUp {
		return maxCatchUp
	}
	return count
}
