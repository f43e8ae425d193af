package worker

import "github.com/orangehat/meetcal/pkg/logger"

// Default number of ingest workers.
const defaultWorkerCount = 4

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
