package enums

import "fmt"

// InterestLevel captures how interested a visitor was after a completed visit.
type InterestLevel string

const (
	InterestLevelLow    InterestLevel = "low"
	InterestLevelMedium InterestLevel = "medium"
	InterestLevelHigh   InterestLevel = "high"
)

var validInterestLevels = []InterestLevel{
	InterestLevelLow,
	InterestLevelMedium,
	InterestLevelHigh,
}

// String implements fmt.Stringer.
func (l InterestLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is a known InterestLevel.
func (l InterestLevel) IsValid() bool {
	for _, candidate := range validInterestLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseInterestLevel converts raw input into an InterestLevel.
func ParseInterestLevel(value string) (InterestLevel, error) {
	for _, candidate := range validInterestLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid interest level %q", value)
}
