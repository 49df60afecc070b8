package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/knapsack-solver/internal/schemas"
)

var schemaFiles = []string{
	"solve_request.schema.json",
	"solve_response.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]
			assert.True(t, hasType && hasSchema && hasProps,
				"schema should declare type, $schema, and properties")
		})
	}
}

func TestRequestSchema_AcceptsValidRequest(t *testing.T) {
	schemaData, err := os.ReadFile("solve_request.schema.json")
	require.NoError(t, err)

	request := `{
		"max_weight": 15,
		"items": [
			{"name": "tent", "weight": 10, "value": 30},
			{"name": "stove", "weight": 4, "value": 14}
		],
		"population_size": 50,
		"generations": 200,
		"mutation_rate": 0.013,
		"crossover_rate": 0.53,
		"seed": 42
	}`

	err = schemas.ValidateString(string(schemaData), request)
	assert.NoError(t, err)
}

func TestRequestSchema_AcceptsEmptyItems(t *testing.T) {
	schemaData, err := os.ReadFile("solve_request.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateString(string(schemaData), `{"max_weight": 0, "items": []}`)
	assert.NoError(t, err)
}

func TestRequestSchema_RejectsNegativeCapacity(t *testing.T) {
	schemaData, err := os.ReadFile("solve_request.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateString(string(schemaData), `{"max_weight": -1, "items": []}`)
	require.Error(t, err)
}

func TestRequestSchema_RejectsNegativeItemWeight(t *testing.T) {
	schemaData, err := os.ReadFile("solve_request.schema.json")
	require.NoError(t, err)

	request := `{"max_weight": 10, "items": [{"name": "x", "weight": -2, "value": 5}]}`
	err = schemas.ValidateString(string(schemaData), request)
	require.Error(t, err)
}

func TestResponseSchema_AcceptsValidResponse(t *testing.T) {
	schemaData, err := os.ReadFile("solve_response.schema.json")
	require.NoError(t, err)

	response := `{
		"selected_items": [{"name": "tent", "weight": 10, "value": 30}],
		"total_value": 30,
		"total_weight": 10,
		"best_fitness_by_generation": [14, 30, 30]
	}`

	err = schemas.ValidateString(string(schemaData), response)
	assert.NoError(t, err)
}

func TestResponseSchema_AcceptsEmptySolution(t *testing.T) {
	schemaData, err := os.ReadFile("solve_response.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateString(string(schemaData),
		`{"selected_items": [], "total_value": 0, "total_weight": 0}`)
	assert.NoError(t, err)
}
