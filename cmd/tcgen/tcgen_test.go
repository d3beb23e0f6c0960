package main

import (
	"testing"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApp(t *testing.T) {
	app := buildApp()

	names := []string{}
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"version", "generate", "validate", "list", "schedule"}, names)
	assert.Len(t, app.Flags, 2)
}

func TestLoggingSetup(t *testing.T) {
	require.NoError(t, loggingSetup("tcgen-test", "debug"))
	assert.Equal(t, "tcgen-test", grip.Name())
	assert.Equal(t, level.Debug, grip.GetSender().Level().Threshold)
}
