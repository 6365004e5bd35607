package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

func TestTableResolveDirect(t *testing.T) {
	table := NewTable(map[string]int64{"PR": 37, "TV": 35}, map[string]int64{"CB": 35})

	match := table.Resolve("PR100")
	require.NotNil(t, match)
	assert.Equal(t, int64(37), match.AgentID)
	assert.Equal(t, enums.PrefixRouteKindDirect, match.Kind)

	match = table.Resolve("tv200")
	require.NotNil(t, match)
	assert.Equal(t, int64(35), match.AgentID)
}

func TestTableResolveThreeLetterWinsOverTwo(t *testing.T) {
	table := NewTable(map[string]int64{"PR": 37, "PRX": 41}, nil)

	match := table.Resolve("PRX500")
	require.NotNil(t, match)
	assert.Equal(t, int64(41), match.AgentID)
	assert.Equal(t, "PRX", match.Prefix)

	match = table.Resolve("PRY500")
	require.NotNil(t, match)
	assert.Equal(t, int64(37), match.AgentID)
	assert.Equal(t, "PR", match.Prefix)
}

func TestTableResolveOrphanFallback(t *testing.T) {
	table := NewTable(map[string]int64{"PR": 37}, map[string]int64{"CB": 35})

	match := table.Resolve("CB300")
	require.NotNil(t, match)
	assert.Equal(t, int64(35), match.AgentID)
	assert.Equal(t, enums.PrefixRouteKindOrphan, match.Kind)
}

func TestTableResolveNoMatch(t *testing.T) {
	table := NewTable(map[string]int64{"PR": 37}, map[string]int64{"CB": 35})

	assert.Nil(t, table.Resolve("XX400"))
	assert.Nil(t, table.Resolve("400"))
	assert.Nil(t, table.Resolve(""))
	assert.Nil(t, table.Resolve("P1"))
}
