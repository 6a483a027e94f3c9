package poll

import "time"

// Config holds the cursor state the poller starts from.
type Config struct {
	// Offset is the first update_id the feed has not yet delivered
	Offset int64
	// Limit caps the number of updates returned per fetch
	Limit int
	// Timeout is how long, in seconds, the feed may hold a fetch open
	Timeout int
	// Interval is the pause between rounds, in milliseconds
	Interval int
	// AllowedUpdates restricts the update kinds delivered; empty means the feed default
	AllowedUpdates []string
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Offset:   0,
		Limit:    100,
		Timeout:  30,
		Interval: 1000,
	}
}

func (c Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

func (c Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// AsMap renders the config as the plain mapping handed to OnInit.
func (c Config) AsMap() map[string]any {
	allowed := make([]string, len(c.AllowedUpdates))
	copy(allowed, c.AllowedUpdates)
	return map[string]any{
		"offset":          c.Offset,
		"limit":           c.Limit,
		"timeout":         c.Timeout,
		"interval":        c.Interval,
		"allowed_updates": allowed,
	}
}

// Normalize drops empty and repeated AllowedUpdates entries, keeping the
// first occurrence of each, and returns a copy that shares no memory with c.
func (c Config) Normalize() Config {
	out := c
	out.AllowedUpdates = nil
	seen := make(map[string]struct{}, len(c.AllowedUpdates))
	for _, kind := range c.AllowedUpdates {
		if kind == "" {
			continue
		}
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		out.AllowedUpdates = append(out.AllowedUpdates, kind)
	}
	return out
}
