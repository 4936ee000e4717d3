package domain

import (
	"fmt"
	"time"
)

// ProcessorEnabled reports whether the named processor should run.
// Processors are on by default and opted out via modules.disabled.
func (c *Config) ProcessorEnabled(name string) bool {
	for _, disabled := range c.Modules.Disabled {
		if disabled == name {
			return false
		}
	}
	return true
}

// DisableProcessor adds the processor to the disabled list.
// Returns an error if it is already disabled.
func (c *Config) DisableProcessor(name string) error {
	if !c.ProcessorEnabled(name) {
		return fmt.Errorf("processor %s is already disabled", name)
	}
	c.Modules.Disabled = append(c.Modules.Disabled, name)
	return nil
}

// EnableProcessor removes the processor from the disabled list.
// Returns an error if it is not currently disabled.
func (c *Config) EnableProcessor(name string) error {
	for i, disabled := range c.Modules.Disabled {
		if disabled == name {
			c.Modules.Disabled = append(c.Modules.Disabled[:i], c.Modules.Disabled[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("processor %s is not disabled", name)
}

// PollInterval returns the clipboard sampling interval with default fallback.
func (c *Config) PollInterval() time.Duration {
	if c.General.PollIntervalMS <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.General.PollIntervalMS) * time.Millisecond
}

// ProcessTimeout returns the per-processor deadline with default fallback.
func (c *Config) ProcessTimeout() time.Duration {
	if c.Performance.ProcessTimeoutSeconds <= 0 {
		return DefaultProcessTimeout
	}
	return time.Duration(c.Performance.ProcessTimeoutSeconds) * time.Second
}

// MemorySampleInterval returns the self-sampling cadence with default fallback.
func (c *Config) MemorySampleInterval() time.Duration {
	if c.Memory.SampleIntervalSeconds <= 0 {
		return DefaultMemorySampleInterval
	}
	return time.Duration(c.Memory.SampleIntervalSeconds) * time.Second
}

// MaxContentBytes returns the dispatch size ceiling with default fallback.
func (c *Config) MaxContentBytes() int {
	if c.General.MaxContentBytes <= 0 {
		return DefaultMaxContentBytes
	}
	return c.General.MaxContentBytes
}
