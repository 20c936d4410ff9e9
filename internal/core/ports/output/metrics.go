package ports

import "time"

// MiningMetrics receives one observation per mining query.
type MiningMetrics interface {
	ObserveQuery(query string, elapsed time.Duration, results int, err error)
}
