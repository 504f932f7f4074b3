package diag

// Collector is the in-memory diagnostic sink wired into a parse session. It
// accumulates diagnostics in emission order up to a fixed cap; the cap keeps
// pathological inputs from flooding the sink. Not safe for concurrent use —
// every session owns its own collector.
type Collector struct {
	items []Diagnostic
	max   int
}

// NewCollector creates a sink that accepts at most max diagnostics.
func NewCollector(max int) *Collector {
	return &Collector{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Report adds a diagnostic. Returns false when the cap is reached and the
// diagnostic was dropped.
func (c *Collector) Report(d Diagnostic) bool {
	if len(c.items) >= c.max {
		return false
	}
	c.items = append(c.items, d)
	return true
}

// Full reports whether the cap has been reached.
func (c *Collector) Full() bool {
	return len(c.items) >= c.max
}

func (c *Collector) Len() int {
	return len(c.items)
}

// Items returns the collected diagnostics in emission order. The returned
// slice points at the collector's internal array; callers must not modify it.
func (c *Collector) Items() []Diagnostic {
	return c.items
}

// HasErrors returns true if at least one collected diagnostic is an error.
func (c *Collector) HasErrors() bool {
	for i := range c.items {
		if c.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}
