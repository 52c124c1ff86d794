package bots

import "time"

// SearchStats describes one root search.
type SearchStats struct {
	StartTime time.Time
	Duration  time.Duration
	Nodes     int64
	Leaves    int64
	Cutoffs   int64
}

type statsCollector struct {
	stats SearchStats
}

func (c *statsCollector) start() {
	c.stats = SearchStats{StartTime: time.Now()}
}

func (c *statsCollector) node()   { c.stats.Nodes++ }
func (c *statsCollector) leaf()   { c.stats.Leaves++ }
func (c *statsCollector) cutoff() { c.stats.Cutoffs++ }

func (c *statsCollector) complete() SearchStats {
	if !c.stats.StartTime.IsZero() {
		c.stats.Duration = time.Since(c.stats.StartTime)
	}
	return c.stats
}
