package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabases(t *testing.T) {
	cmd := Databases()

	require.NotNil(t, cmd)
	assert.Equal(t, "db", cmd.Use)

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, expected := range []string{"list", "status", "start", "stop"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestDatabases_IdentificationFlags(t *testing.T) {
	cmd := Databases()

	for _, sub := range cmd.Commands() {
		if sub.Name() == "list" {
			continue
		}
		name := sub.Flags().Lookup("name")
		require.NotNil(t, name, "%s should have a name flag", sub.Name())
		dbType := sub.Flags().Lookup("type")
		require.NotNil(t, dbType, "%s should have a type flag", sub.Name())
	}
}

func TestDatabases_RunE(t *testing.T) {
	for _, sub := range Databases().Commands() {
		assert.NotNil(t, sub.RunE, "%s should have RunE function", sub.Name())
	}
}
