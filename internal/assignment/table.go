package assignment

import "github.com/tvindima/crm-plus-sub000/pkg/enums"

// Table is an immutable snapshot of the prefix routing rules. Direct rows map
// a prefix to its owning agent; orphan rows route a prefix without a dedicated
// owner to a coordinator agent.
type Table struct {
	direct map[string]int64
	orphan map[string]int64
}

// Match is a successful prefix resolution.
type Match struct {
	AgentID int64
	Prefix  string
	Kind    enums.PrefixRouteKind
}

// NewTable builds a lookup table from route rows.
func NewTable(direct, orphan map[string]int64) *Table {
	if direct == nil {
		direct = map[string]int64{}
	}
	if orphan == nil {
		orphan = map[string]int64{}
	}
	return &Table{direct: direct, orphan: orphan}
}

// Resolve maps a property reference to its owning agent. Lookup tries the
// 3-letter slice of the prefix first, then the 2-letter slice, then the
// 2-letter slice against the orphan set. Nil means no rule applies and the
// caller must leave the current assignment untouched.
func (t *Table) Resolve(reference string) *Match {
	prefix := ExtractPrefix(reference)
	if len(prefix) < 2 {
		return nil
	}

	if len(prefix) >= 3 {
		key := prefix[:3]
		if agentID, ok := t.direct[key]; ok {
			return &Match{AgentID: agentID, Prefix: key, Kind: enums.PrefixRouteKindDirect}
		}
	}

	key := prefix[:2]
	if agentID, ok := t.direct[key]; ok {
		return &Match{AgentID: agentID, Prefix: key, Kind: enums.PrefixRouteKindDirect}
	}
	if agentID, ok := t.orphan[key]; ok {
		return &Match{AgentID: agentID, Prefix: key, Kind: enums.PrefixRouteKindOrphan}
	}
	return nil
}

// Size returns the number of routing rules loaded.
func (t *Table) Size() int {
	return len(t.direct) + len(t.orphan)
}
