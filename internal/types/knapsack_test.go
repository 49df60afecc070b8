package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveRequest_Validate_Valid(t *testing.T) {
	req := &SolveRequest{
		MaxWeight: 50,
		Items: []Item{
			{Name: "tent", Weight: 10, Value: 60},
			{Name: "stove", Weight: 30, Value: 120},
		},
	}

	assert.NoError(t, req.Validate())
}

func TestSolveRequest_Validate_EmptyItems(t *testing.T) {
	req := &SolveRequest{MaxWeight: 10}

	assert.NoError(t, req.Validate())
}

func TestSolveRequest_Validate_NegativeFields(t *testing.T) {
	tests := []struct {
		name string
		req  SolveRequest
	}{
		{"negative capacity", SolveRequest{MaxWeight: -1}},
		{"negative item weight", SolveRequest{MaxWeight: 10, Items: []Item{{Name: "a", Weight: -1, Value: 1}}}},
		{"negative item value", SolveRequest{MaxWeight: 10, Items: []Item{{Name: "a", Weight: 1, Value: -1}}}},
		{"mutation rate above one", SolveRequest{MaxWeight: 10, MutationRate: 1.5}},
		{"tournament size of one", SolveRequest{MaxWeight: 10, TournamentSize: 1}},
		{"negative restarts", SolveRequest{MaxWeight: 10, Restarts: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestSolveRequest_JSONRoundTrip(t *testing.T) {
	seed := int64(42)
	req := SolveRequest{
		MaxWeight: 50,
		Items:     []Item{{Name: "tent", Weight: 10, Value: 60}},
		Seed:      &seed,
		Restarts:  4,
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded SolveRequest
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, req, decoded)
}

func TestSolveRequest_OptionalFieldsOmitted(t *testing.T) {
	data, err := json.Marshal(SolveRequest{MaxWeight: 10, Items: []Item{}})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "seed")
	assert.NotContains(t, string(data), "population_size")
	assert.NotContains(t, string(data), "restarts")
}
