package enums

import "fmt"

// LeadStatus tracks where a lead sits in the sales funnel.
type LeadStatus string

const (
	LeadStatusNew            LeadStatus = "new"
	LeadStatusContacted      LeadStatus = "contacted"
	LeadStatusQualified      LeadStatus = "qualified"
	LeadStatusProposalSent   LeadStatus = "proposal_sent"
	LeadStatusVisitScheduled LeadStatus = "visit_scheduled"
	LeadStatusNegotiation    LeadStatus = "negotiation"
	LeadStatusConverted      LeadStatus = "converted"
	LeadStatusLost           LeadStatus = "lost"
)

// FunnelStages is the canonical stage ordering used by the funnel report.
// Lost leads sit outside the funnel.
var FunnelStages = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposalSent,
	LeadStatusVisitScheduled,
	LeadStatusNegotiation,
	LeadStatusConverted,
}

// ActiveLeadStatuses is the subset that counts toward an agent's open workload.
var ActiveLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
}

var validLeadStatuses = append(append([]LeadStatus{}, FunnelStages...), LeadStatusLost)

// String implements fmt.Stringer.
func (s LeadStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LeadStatus.
func (s LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the lead's lifecycle.
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusConverted || s == LeadStatusLost
}

// IsActive reports whether the status counts toward an agent's open workload.
func (s LeadStatus) IsActive() bool {
	for _, candidate := range ActiveLeadStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// FunnelIndex returns the position of the status in the funnel ordering, or -1
// for statuses outside the funnel.
func (s LeadStatus) FunnelIndex() int {
	for i, stage := range FunnelStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
