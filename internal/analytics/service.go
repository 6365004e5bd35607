package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
)

// DefaultPeriodDays is used when the caller omits the window length.
const DefaultPeriodDays = 30

// Service exposes the lead reporting aggregations.
type Service interface {
	Conversion(ctx context.Context, days int) (*ConversionReport, error)
	AgentPerformance(ctx context.Context, days int) (*AgentPerformanceReport, error)
	Funnel(ctx context.Context, days int) (*FunnelReport, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds an analytics service. The clock is injectable for tests.
func NewService(repo Repository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) window(days int) (int, time.Time, error) {
	if days == 0 {
		days = DefaultPeriodDays
	}
	if days < 0 {
		return 0, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "days must be positive")
	}
	return days, s.now().AddDate(0, 0, -days), nil
}

func (s *service) Conversion(ctx context.Context, days int) (*ConversionReport, error) {
	days, since, err := s.window(days)
	if err != nil {
		return nil, err
	}
	leads, err := s.repo.ListLeadsCreatedSince(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}

	report := &ConversionReport{
		PeriodDays:         days,
		ConversionBySource: map[enums.LeadSource]SourceBreakdown{},
	}
	var conversionHours float64
	for _, lead := range leads {
		report.TotalLeads++
		bySource := report.ConversionBySource[lead.Source]
		bySource.TotalLeads++
		if lead.Status == enums.LeadStatusConverted {
			report.ConvertedLeads++
			bySource.ConvertedLeads++
			// updated_at proxies the conversion moment; it reflects the last
			// touch, not the actual status change event
			conversionHours += lead.UpdatedAt.Sub(lead.CreatedAt).Hours()
		}
		report.ConversionBySource[lead.Source] = bySource
	}

	report.ConversionRate = percentage(report.ConvertedLeads, report.TotalLeads, 2)
	for source, breakdown := range report.ConversionBySource {
		breakdown.ConversionRate = percentage(breakdown.ConvertedLeads, breakdown.TotalLeads, 2)
		report.ConversionBySource[source] = breakdown
	}
	if report.ConvertedLeads > 0 {
		report.AvgHoursToConversion = round(conversionHours/float64(report.ConvertedLeads), 2)
	}
	return report, nil
}

func (s *service) AgentPerformance(ctx context.Context, days int) (*AgentPerformanceReport, error) {
	days, since, err := s.window(days)
	if err != nil {
		return nil, err
	}
	leads, err := s.repo.ListLeadsCreatedSince(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}

	type accumulator struct {
		stats         AgentStats
		responseHours float64
		responded     int
	}
	byAgent := map[int64]*accumulator{}
	for _, lead := range leads {
		if lead.AgentID == nil {
			continue
		}
		acc, ok := byAgent[*lead.AgentID]
		if !ok {
			acc = &accumulator{stats: AgentStats{AgentID: *lead.AgentID}}
			byAgent[*lead.AgentID] = acc
		}
		acc.stats.TotalLeads++
		switch {
		case lead.Status.IsActive():
			acc.stats.ActiveLeads++
		case lead.Status == enums.LeadStatusConverted:
			acc.stats.ConvertedLeads++
		case lead.Status == enums.LeadStatusLost:
			acc.stats.LostLeads++
		}
		if lead.Status != enums.LeadStatusNew {
			acc.responseHours += lead.UpdatedAt.Sub(lead.CreatedAt).Hours()
			acc.responded++
		}
	}

	ids := make([]int64, 0, len(byAgent))
	for id := range byAgent {
		ids = append(ids, id)
	}
	names, err := s.repo.AgentNames(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent names")
	}

	report := &AgentPerformanceReport{PeriodDays: days, Agents: []AgentStats{}}
	for id, acc := range byAgent {
		acc.stats.AgentName = names[id]
		acc.stats.ConversionRate = percentage(acc.stats.ConvertedLeads, acc.stats.TotalLeads, 2)
		if acc.responded > 0 {
			acc.stats.AvgResponseHours = round(acc.responseHours/float64(acc.responded), 2)
		}
		report.Agents = append(report.Agents, acc.stats)
	}
	sort.Slice(report.Agents, func(i, j int) bool {
		if report.Agents[i].ConvertedLeads != report.Agents[j].ConvertedLeads {
			return report.Agents[i].ConvertedLeads > report.Agents[j].ConvertedLeads
		}
		return report.Agents[i].AgentID < report.Agents[j].AgentID
	})
	return report, nil
}

func (s *service) Funnel(ctx context.Context, days int) (*FunnelReport, error) {
	days, since, err := s.window(days)
	if err != nil {
		return nil, err
	}
	leads, err := s.repo.ListLeadsCreatedSince(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}

	counts := map[enums.LeadStatus]int{}
	total := 0
	for _, lead := range leads {
		if lead.Status.FunnelIndex() < 0 {
			continue
		}
		counts[lead.Status]++
		total++
	}

	report := &FunnelReport{
		PeriodDays:      days,
		TotalLeads:      total,
		Funnel:          map[enums.LeadStatus]StageCount{},
		DropoffAnalysis: map[string]StageTransition{},
	}
	for _, stage := range enums.FunnelStages {
		report.Funnel[stage] = StageCount{
			Count:      counts[stage],
			Percentage: percentage(counts[stage], total, 1),
		}
	}
	for i := 0; i < len(enums.FunnelStages)-1; i++ {
		current := enums.FunnelStages[i]
		next := enums.FunnelStages[i+1]
		key := fmt.Sprintf("%s_to_%s", current, next)

		transition := StageTransition{Dropped: counts[current] - counts[next]}
		if counts[current] > 0 {
			transition.RetentionRate = percentage(counts[next], counts[current], 2)
			transition.DropOffRate = round(100-transition.RetentionRate, 2)
		} else {
			transition.DropOffRate = 100
		}
		report.DropoffAnalysis[key] = transition
	}
	return report, nil
}

func percentage(part, total int, decimals int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(part)/float64(total)*100, decimals)
}

func round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
