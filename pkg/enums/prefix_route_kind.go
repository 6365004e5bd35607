package enums

import "fmt"

// PrefixRouteKind distinguishes direct prefix ownership from orphan fallback rows.
type PrefixRouteKind string

const (
	// PrefixRouteKindDirect maps a prefix to the agent who owns it.
	PrefixRouteKindDirect PrefixRouteKind = "direct"
	// PrefixRouteKindOrphan routes a prefix without an owner to a coordinator.
	PrefixRouteKindOrphan PrefixRouteKind = "orphan"
)

var validPrefixRouteKinds = []PrefixRouteKind{
	PrefixRouteKindDirect,
	PrefixRouteKindOrphan,
}

// String implements fmt.Stringer.
func (k PrefixRouteKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PrefixRouteKind.
func (k PrefixRouteKind) IsValid() bool {
	for _, candidate := range validPrefixRouteKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePrefixRouteKind converts raw input into a PrefixRouteKind.
func ParsePrefixRouteKind(value string) (PrefixRouteKind, error) {
	for _, candidate := range validPrefixRouteKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid prefix route kind %q", value)
}
