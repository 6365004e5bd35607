package enums

import "fmt"

// PropertyStatus tracks the commercial state of a listing.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusReserved  PropertyStatus = "reserved"
	PropertyStatusSold      PropertyStatus = "sold"
)

var validPropertyStatuses = []PropertyStatus{
	PropertyStatusAvailable,
	PropertyStatusReserved,
	PropertyStatusSold,
}

// String implements fmt.Stringer.
func (s PropertyStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PropertyStatus.
func (s PropertyStatus) IsValid() bool {
	for _, candidate := range validPropertyStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePropertyStatus converts raw input into a PropertyStatus.
func ParsePropertyStatus(value string) (PropertyStatus, error) {
	for _, candidate := range validPropertyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property status %q", value)
}
