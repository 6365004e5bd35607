package distribution

import (
	"context"
	"fmt"
	"sort"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service spreads batches of leads across agents.
type Service interface {
	Distribute(ctx context.Context, input Input) (*Result, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a distribution service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("distribution repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Distribute assigns every matched lead in one transaction. Missing leads,
// missing agents and empty batches come back as result-level errors with
// distributed == 0; only malformed requests surface as transport errors.
func (s *service) Distribute(ctx context.Context, input Input) (*Result, error) {
	if !input.Strategy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid distribution strategy")
	}
	if input.Strategy == enums.DistributionStrategyManual && input.TargetAgentID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manual distribution requires target_agent_id")
	}

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		leads, err := repo.FindLeadsByIDs(ctx, input.LeadIDs)
		if err != nil {
			return fmt.Errorf("load leads: %w", err)
		}
		leads = orderByRequest(input.LeadIDs, leads)
		if len(leads) == 0 {
			result = errorResult(input.Strategy, "no leads matched the provided ids")
			return nil
		}

		switch input.Strategy {
		case enums.DistributionStrategyManual:
			result, err = s.manual(ctx, repo, leads, *input.TargetAgentID)
		case enums.DistributionStrategyRoundRobin:
			result, err = s.roundRobin(ctx, repo, leads)
		case enums.DistributionStrategyLeastBusy:
			result, err = s.leastBusy(ctx, repo, leads)
		}
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "distribute leads")
	}
	return result, nil
}

func (s *service) manual(ctx context.Context, repo Repository, leads []models.Lead, targetAgentID int64) (*Result, error) {
	if _, err := repo.FindAgent(ctx, targetAgentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errorResult(enums.DistributionStrategyManual, fmt.Sprintf("agent %d not found", targetAgentID)), nil
		}
		return nil, fmt.Errorf("load agent %d: %w", targetAgentID, err)
	}
	return s.assign(ctx, repo, enums.DistributionStrategyManual, leads, func(int) int64 {
		return targetAgentID
	})
}

func (s *service) roundRobin(ctx context.Context, repo Repository, leads []models.Lead) (*Result, error) {
	agents, err := repo.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	if len(agents) == 0 {
		return errorResult(enums.DistributionStrategyRoundRobin, "no agents available"), nil
	}
	return s.assign(ctx, repo, enums.DistributionStrategyRoundRobin, leads, func(i int) int64 {
		return agents[i%len(agents)].ID
	})
}

// leastBusy sorts agents by their active lead count taken once up front. The
// snapshot is not rebalanced as leads land within the same batch.
func (s *service) leastBusy(ctx context.Context, repo Repository, leads []models.Lead) (*Result, error) {
	agents, err := repo.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	if len(agents) == 0 {
		return errorResult(enums.DistributionStrategyLeastBusy, "no agents available"), nil
	}
	counts, err := repo.CountActiveLeadsByAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active leads: %w", err)
	}
	sort.SliceStable(agents, func(i, j int) bool {
		return counts[agents[i].ID] < counts[agents[j].ID]
	})
	return s.assign(ctx, repo, enums.DistributionStrategyLeastBusy, leads, func(i int) int64 {
		return agents[i%len(agents)].ID
	})
}

func (s *service) assign(ctx context.Context, repo Repository, strategy enums.DistributionStrategy, leads []models.Lead, pick func(i int) int64) (*Result, error) {
	result := &Result{
		Strategy: strategy,
		ByAgent:  map[int64]int{},
	}
	for i, lead := range leads {
		agentID := pick(i)
		if err := repo.UpdateLeadAgent(ctx, lead.ID, agentID); err != nil {
			return nil, fmt.Errorf("assign lead %d: %w", lead.ID, err)
		}
		result.Distributed++
		result.ByAgent[agentID]++
		result.Assignments = append(result.Assignments, Assignment{LeadID: lead.ID, AgentID: agentID})
	}
	return result, nil
}

// orderByRequest restores the caller's lead ordering, dropping ids that did
// not match a row.
func orderByRequest(ids []int64, leads []models.Lead) []models.Lead {
	byID := make(map[int64]models.Lead, len(leads))
	for _, lead := range leads {
		byID[lead.ID] = lead
	}
	ordered := make([]models.Lead, 0, len(leads))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if lead, ok := byID[id]; ok {
			ordered = append(ordered, lead)
		}
	}
	return ordered
}
