package repository

// Seed for the treap priority generator; any odd constant works.
const defaultRNGSeed = 0x9E3779B97F4A7C15

// Option applies a configuration option to the CalStore.
type Option func(*CalStore)

// WithRNGSeed overrides the treap priority seed. Tests use it to get a
// reproducible tree shape.
func WithRNGSeed(seed uint64) Option {
	return func(s *CalStore) {
		if seed != 0 {
			s.rngState = seed
		}
	}
}
