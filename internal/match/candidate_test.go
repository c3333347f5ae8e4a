package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userProps = []string{"login", "password", "name", "birthday", "isActive"}

func TestRank(t *testing.T) {
	candidates := Rank("is_active", userProps)

	require.Len(t, candidates, len(userProps))
	assert.Equal(t, "isActive", candidates[0].Name)
	assert.InDelta(t, 1.0, candidates[0].Score, 0.0001)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestRank_Determinism(t *testing.T) {
	first := Rank("x", []string{"b", "a", "c"})
	second := Rank("x", []string{"c", "b", "a"})

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b"}, []string{first[0].Name, first[1].Name})
}

func TestCandidateList_TopBest(t *testing.T) {
	list := CandidateList{{"a", 0.9}, {"b", 0.5}}

	assert.Len(t, list.Top(1), 1)
	assert.Len(t, list.Top(5), 2)
	assert.Equal(t, "a", list.Best().Name)
	assert.Nil(t, CandidateList{}.Best())
}

func TestCandidateList_HighConfidence(t *testing.T) {
	tests := []struct {
		name string
		list CandidateList
		want string
	}{
		{"clear winner", CandidateList{{"a", 0.9}, {"b", 0.5}}, "a"},
		{"single", CandidateList{{"a", 0.7}}, "a"},
		{"too low", CandidateList{{"a", 0.4}}, ""},
		{"too close", CandidateList{{"a", 0.8}, {"b", 0.75}}, ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best := tt.list.HighConfidence(DefaultMinScore, DefaultMinGap)
			if tt.want == "" {
				assert.Nil(t, best)
				return
			}

			require.NotNil(t, best)
			assert.Equal(t, tt.want, best.Name)
		})
	}
}

func TestSuggest(t *testing.T) {
	got, ok := Suggest("pasword", userProps)
	require.True(t, ok)
	assert.Equal(t, "password", got)

	got, ok = Suggest("birthdate", userProps)
	require.True(t, ok)
	assert.Equal(t, "birthday", got)

	_, ok = Suggest("gender", userProps)
	assert.False(t, ok)

	_, ok = Suggest("login", nil)
	assert.False(t, ok)
}
