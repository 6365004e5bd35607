package enums

import "fmt"

// DistributionStrategy selects how a batch of leads is spread across agents.
type DistributionStrategy string

const (
	DistributionStrategyManual     DistributionStrategy = "manual"
	DistributionStrategyRoundRobin DistributionStrategy = "round_robin"
	DistributionStrategyLeastBusy  DistributionStrategy = "least_busy"
)

var validDistributionStrategies = []DistributionStrategy{
	DistributionStrategyManual,
	DistributionStrategyRoundRobin,
	DistributionStrategyLeastBusy,
}

// String implements fmt.Stringer.
func (s DistributionStrategy) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DistributionStrategy.
func (s DistributionStrategy) IsValid() bool {
	for _, candidate := range validDistributionStrategies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDistributionStrategy converts raw input into a DistributionStrategy.
func ParseDistributionStrategy(value string) (DistributionStrategy, error) {
	for _, candidate := range validDistributionStrategies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid distribution strategy %q", value)
}
