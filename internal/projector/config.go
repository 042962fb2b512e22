package projector

import "time"

// Config tunes the thresholds the projector uses to classify a task as
// stalled or at risk. There is no universally correct cadence for this, so
// callers may override the defaults per project.
type Config struct {
	// StaleAfter is how old a task in a non-terminal status may be, counted
	// from the creation time in its id, before it is considered stalled.
	StaleAfter time.Duration
	// AtRiskAfter is the earlier threshold at which a task is flagged as
	// approaching staleness, without having crossed it yet.
	AtRiskAfter time.Duration
}

// DefaultConfig mirrors the cadence a weekly-cycle project runs on: a
// non-terminal task created more than two weeks ago is stalled, one created
// more than a week ago is at risk.
func DefaultConfig() Config {
	return Config{
		StaleAfter:  14 * 24 * time.Hour,
		AtRiskAfter: 7 * 24 * time.Hour,
	}
}

func (c Config) normalized() Config {
	if c.StaleAfter <= 0 {
		c.StaleAfter = DefaultConfig().StaleAfter
	}
	if c.AtRiskAfter <= 0 {
		c.AtRiskAfter = DefaultConfig().AtRiskAfter
	}
	return c
}
