package distribution

import "github.com/tvindima/crm-plus-sub000/pkg/enums"

// Input is one distribution request.
type Input struct {
	LeadIDs       []int64                    `json:"lead_ids" validate:"required"`
	Strategy      enums.DistributionStrategy `json:"strategy" validate:"required"`
	TargetAgentID *int64                     `json:"target_agent_id,omitempty"`
}

// Assignment records one lead landing on one agent.
type Assignment struct {
	LeadID  int64 `json:"lead_id"`
	AgentID int64 `json:"agent_id"`
}

// Result summarizes a distribution batch. Errors carries result-level
// failures; a non-empty list always pairs with Distributed == 0.
type Result struct {
	Distributed int                        `json:"distributed"`
	Strategy    enums.DistributionStrategy `json:"strategy"`
	Assignments []Assignment               `json:"assignments,omitempty"`
	ByAgent     map[int64]int              `json:"by_agent,omitempty"`
	Errors      []string                   `json:"errors,omitempty"`
}

func errorResult(strategy enums.DistributionStrategy, messages ...string) *Result {
	return &Result{Distributed: 0, Strategy: strategy, Errors: messages}
}
