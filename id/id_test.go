package id_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager/id"
)

func TestGeneratedIDsCarryTheirPrefix(t *testing.T) {
	for prefix, mint := range map[id.Prefix]func() id.ID{
		id.PrefixCondition:  id.NewConditionID,
		id.PrefixEdge:       id.NewEdgeID,
		id.PrefixEvaluation: id.NewEvaluationID,
		id.PrefixNetworkMap: id.NewNetworkMapID,
	} {
		got := mint()
		assert.Equal(t, prefix, got.Prefix())
		assert.True(t, strings.HasPrefix(got.String(), string(prefix)+"_"), got.String())

		parsed, err := id.Parse(got.String(), prefix)
		require.NoError(t, err)
		assert.Equal(t, got.String(), parsed.String())
	}
}

func TestParseChecksPrefix(t *testing.T) {
	edge := id.NewEdgeID().String()

	_, err := id.Parse(edge, id.PrefixCondition)
	assert.Error(t, err)

	parsed, err := id.Parse(edge, "")
	require.NoError(t, err)
	assert.Equal(t, id.PrefixEdge, parsed.Prefix())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "c-live", "cond_not-a-suffix"} {
		_, err := id.Parse(s, "")
		assert.Error(t, err, s)
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		s := id.NewConditionID().String()
		_, dup := seen[s]
		require.False(t, dup, "duplicate id %s", s)
		seen[s] = struct{}{}
	}
}
