package analytics

import "github.com/tvindima/crm-plus-sub000/pkg/enums"

// SourceBreakdown is the per-source slice of the conversion report.
type SourceBreakdown struct {
	TotalLeads     int     `json:"total_leads"`
	ConvertedLeads int     `json:"converted_leads"`
	ConversionRate float64 `json:"conversion_rate"`
}

// ConversionReport aggregates lead conversion over a trailing window.
type ConversionReport struct {
	PeriodDays           int                                  `json:"period_days"`
	TotalLeads           int                                  `json:"total_leads"`
	ConvertedLeads       int                                  `json:"converted_leads"`
	ConversionRate       float64                              `json:"conversion_rate"`
	ConversionBySource   map[enums.LeadSource]SourceBreakdown `json:"conversion_by_source"`
	AvgHoursToConversion float64                              `json:"avg_hours_to_conversion"`
}

// AgentStats is one agent's row in the performance report.
type AgentStats struct {
	AgentID          int64   `json:"agent_id"`
	AgentName        string  `json:"agent_name"`
	TotalLeads       int     `json:"total_leads"`
	ActiveLeads      int     `json:"active_leads"`
	ConvertedLeads   int     `json:"converted_leads"`
	LostLeads        int     `json:"lost_leads"`
	ConversionRate   float64 `json:"conversion_rate"`
	AvgResponseHours float64 `json:"avg_response_hours"`
}

// AgentPerformanceReport lists every agent that touched a lead in the window.
type AgentPerformanceReport struct {
	PeriodDays int          `json:"period_days"`
	Agents     []AgentStats `json:"agents"`
}

// StageCount is one funnel stage snapshot.
type StageCount struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StageTransition compares two adjacent funnel stages.
type StageTransition struct {
	RetentionRate float64 `json:"retention_rate"`
	DropOffRate   float64 `json:"drop_off_rate"`
	Dropped       int     `json:"dropped"`
}

// FunnelReport is the snapshot funnel with adjacent-stage drop-off. Retention
// compares current counts per status, not cohort progression; a lead that
// skipped a stage never shows up in it.
type FunnelReport struct {
	PeriodDays      int                             `json:"period_days"`
	TotalLeads      int                             `json:"total_leads"`
	Funnel          map[enums.LeadStatus]StageCount `json:"funnel"`
	DropoffAnalysis map[string]StageTransition      `json:"dropoff_analysis"`
}
