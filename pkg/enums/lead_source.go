package enums

import "fmt"

// LeadSource records which channel produced a lead.
type LeadSource string

const (
	LeadSourceWebsite  LeadSource = "website"
	LeadSourcePortal   LeadSource = "portal"
	LeadSourceReferral LeadSource = "referral"
	LeadSourceWalkIn   LeadSource = "walk_in"
	LeadSourceSocial   LeadSource = "social"
	LeadSourcePhone    LeadSource = "phone"
	LeadSourceOther    LeadSource = "other"
)

var validLeadSources = []LeadSource{
	LeadSourceWebsite,
	LeadSourcePortal,
	LeadSourceReferral,
	LeadSourceWalkIn,
	LeadSourceSocial,
	LeadSourcePhone,
	LeadSourceOther,
}

// String implements fmt.Stringer.
func (s LeadSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LeadSource.
func (s LeadSource) IsValid() bool {
	for _, candidate := range validLeadSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLeadSource converts raw input into a LeadSource.
func ParseLeadSource(value string) (LeadSource, error) {
	for _, candidate := range validLeadSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead source %q", value)
}
