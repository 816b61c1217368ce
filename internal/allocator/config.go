package allocator

import "github.com/orizon-lang/memregion/internal/region"

// Policy selects how the placement selector picks a free block to satisfy
// an allocation request. The integer values are part of the public
// contract: callers may receive them from configuration files or CLI flags.
type Policy int

const (
	BestFit  Policy = 0
	FirstFit Policy = 1
	WorstFit Policy = 2
)

// String renders the policy the way dumps and error context render it.
func (p Policy) String() string {
	switch p {
	case BestFit:
		return "best-fit"
	case FirstFit:
		return "first-fit"
	case WorstFit:
		return "worst-fit"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the three defined policies.
func (p Policy) Valid() bool {
	switch p {
	case BestFit, FirstFit, WorstFit:
		return true
	default:
		return false
	}
}

// Config carries the knobs a Heap is constructed with. Following the
// project's Option pattern, it is never mutated after New returns.
type Config struct {
	// Provider supplies the backing region. Defaults to an in-memory
	// provider so a bare New() is usable in tests without any platform
	// setup.
	Provider region.Provider
}

// Option configures a Config.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		Provider: region.NewMemProvider(0),
	}
}

// WithProvider overrides the region provider, e.g. to the OS-backed mapper
// or a mock used to exercise Init's failure path.
func WithProvider(p region.Provider) Option {
	return func(c *Config) { c.Provider = p }
}
