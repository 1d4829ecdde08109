package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, appName, app.Name)

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"import", "score", "simulate", "query", "reset", "server"}, names)
}

func TestEncode_JSON(t *testing.T) {
	outputFormat = formatJSON
	assert.NoError(t, encode(map[string]int{"score": 100}))
}

func TestEncode_YAML(t *testing.T) {
	outputFormat = formatYAML
	t.Cleanup(func() { outputFormat = formatJSON })
	assert.NoError(t, encode(map[string]int{"score": 100}))
}
