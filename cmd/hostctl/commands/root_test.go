package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "hostctl", cmd.Use)
	assert.Equal(t, "Control the SAP Host Agent on managed hosts", cmd.Short)
	assert.True(t, cmd.SilenceUsage)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expectedSubcommands := []string{
		"apply",
		"systems",
		"instances",
		"db",
		"discovery",
		"sda",
		"version",
		"completion",
	}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range expectedSubcommands {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestRoot_SubcommandCount(t *testing.T) {
	cmd := Root()
	assert.Len(t, cmd.Commands(), 8, "Expected 8 subcommands")
}

func TestRoot_ConnectionFlags(t *testing.T) {
	cmd := Root()
	flags := cmd.PersistentFlags()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"host", "", ""},
		{"port", "", "1129"},
		{"username", "u", "sapadm"},
		{"password", "p", ""},
		{"no-fallback", "", "false"},
		{"insecure", "", "false"},
		{"timeout", "", "5m0s"},
		{"log-level", "", "warning"},
	}

	for _, tt := range tests {
		flag := flags.Lookup(tt.name)
		require.NotNil(t, flag, "flag %s should exist", tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand, "flag %s shorthand", tt.name)
		assert.Equal(t, tt.defValue, flag.DefValue, "flag %s default", tt.name)
	}
}

func TestConnection_FromFlags(t *testing.T) {
	cmd := Root()
	require.NoError(t, cmd.PersistentFlags().Set("host", "hana01.my.domain"))
	require.NoError(t, cmd.PersistentFlags().Set("no-fallback", "true"))

	built := connection()
	assert.Equal(t, "hana01.my.domain", built.Host)
	assert.False(t, built.Fallback)
	assert.Equal(t, "sapadm", built.Username)
}
