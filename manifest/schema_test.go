package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "edo template definition", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema has no properties object")
	for _, field := range []string{"name", "description", "template", "statics", "vars"} {
		assert.Contains(t, props, field)
	}
	assert.NotContains(t, props, "Origin")

	required, ok := schema["required"].([]any)
	require.True(t, ok, "schema has no required list")
	assert.Contains(t, required, "name")
	assert.Contains(t, required, "template")
}
