package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapops/hostctl/internal/state"
)

const fullDocument = `
host: hana01.my.domain
agent:
  port: 1129
  fallback: false
  insecure: true
  timeout: 120s
  username: sapadm
  password: vault:secret/sap/hana01#password
vault:
  address: https://vault.my.domain:8200
  token: env:VAULT_TOKEN
states:
  - type: system_installed
    name: S4H
  - type: outside_discovery_executed
    name: sol.my.domain
    sld_port: 50000
    sld_username: SLD_DS_USER
    sld_password: vault:secret/sap/sld#password
    overwrite: true
  - type: sda_installed
    archive: /install/SDA.SAR
    jvm_archive: /install/SAPJVM8.SAR
`

const minimalDocument = `
agent:
  password: env:HOSTCTL_PASSWORD
states:
  - type: system_installed
    name: S4H
`

func TestLoad(t *testing.T) {
	t.Parallel()

	doc, err := Load([]byte(fullDocument))
	require.NoError(t, err)

	assert.Equal(t, "hana01.my.domain", doc.Host)
	assert.Equal(t, 1129, doc.Agent.Port)
	assert.False(t, doc.Agent.FallbackEnabled())
	assert.True(t, doc.Agent.Insecure)
	assert.Equal(t, 120*time.Second, doc.Agent.Timeout)
	assert.Equal(t, "sapadm", doc.Agent.Username)
	assert.Equal(t, "vault:secret/sap/hana01#password", doc.Agent.Password)
	assert.Equal(t, "https://vault.my.domain:8200", doc.Vault.Address)
	assert.Equal(t, "env:VAULT_TOKEN", doc.Vault.Token)
	assert.Len(t, doc.States, 3)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	doc, err := Load([]byte(minimalDocument))
	require.NoError(t, err)

	hostname, err := os.Hostname()
	require.NoError(t, err)
	assert.Equal(t, hostname, doc.Host)
	assert.Equal(t, DefaultAgentPort, doc.Agent.Port)
	assert.Equal(t, DefaultTimeout, doc.Agent.Timeout)
	assert.Equal(t, DefaultUsername, doc.Agent.Username)
	assert.True(t, doc.Agent.FallbackEnabled())
	assert.False(t, doc.Agent.Insecure)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Load([]byte("states: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestLoad_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing password",
			doc:     "states:\n  - type: system_installed\n    name: S4H\n",
			wantErr: "agent password is required",
		},
		{
			name:    "no states",
			doc:     "agent:\n  password: x\n",
			wantErr: "declares no states",
		},
		{
			name:    "port out of range",
			doc:     "agent:\n  port: 99999\n  password: x\nstates:\n  - type: system_installed\n    name: S4H\n",
			wantErr: "out of range",
		},
		{
			name:    "unknown state type",
			doc:     "agent:\n  password: x\nstates:\n  - type: reboot_host\n",
			wantErr: `unknown state type "reboot_host"`,
		},
		{
			name:    "state without type",
			doc:     "agent:\n  password: x\nstates:\n  - name: S4H\n",
			wantErr: "state 0 has no type",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hostctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullDocument), 0600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hana01.my.domain", doc.Host)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read state document")
}

func TestBuildStates(t *testing.T) {
	t.Parallel()

	doc, err := Load([]byte(fullDocument))
	require.NoError(t, err)

	states, err := doc.BuildStates()
	require.NoError(t, err)
	require.Len(t, states, 3)

	assert.Equal(t, state.SystemInstalled{SID: "S4H"}, states[0])
	assert.Equal(t, state.OutsideDiscoveryExecuted{
		SLDHost:     "sol.my.domain",
		SLDPort:     50000,
		SLDUsername: "SLD_DS_USER",
		SLDPassword: "vault:secret/sap/sld#password",
		Overwrite:   true,
	}, states[1])
	// Verify defaults to true when the document omits it.
	assert.Equal(t, state.SDAInstalled{
		ArchivePath:    "/install/SDA.SAR",
		JVMArchivePath: "/install/SAPJVM8.SAR",
		Verify:         true,
	}, states[2])
}

func TestBuildStates_SDAVerifyDisabled(t *testing.T) {
	t.Parallel()

	doc := &Document{States: []map[string]interface{}{{
		"type":        "sda_installed",
		"archive":     "/install/SDA.SAR",
		"jvm_archive": "/install/SAPJVM8.SAR",
		"verify":      false,
	}}}

	states, err := doc.BuildStates()
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, state.SDAInstalled{
		ArchivePath:    "/install/SDA.SAR",
		JVMArchivePath: "/install/SAPJVM8.SAR",
	}, states[0])
}

func TestBuildStates_FieldValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     map[string]interface{}
		wantErr string
	}{
		{
			name:    "system without name",
			raw:     map[string]interface{}{"type": "system_installed"},
			wantErr: "name (the SID) is required",
		},
		{
			name: "discovery without port",
			raw: map[string]interface{}{
				"type": "outside_discovery_executed", "name": "sol",
				"sld_username": "u", "sld_password": "p",
			},
			wantErr: "sld_port 0 is out of range",
		},
		{
			name: "discovery without credentials",
			raw: map[string]interface{}{
				"type": "outside_discovery_executed", "name": "sol", "sld_port": 50000,
			},
			wantErr: "sld_username and sld_password are required",
		},
		{
			name:    "sda without archives",
			raw:     map[string]interface{}{"type": "sda_installed"},
			wantErr: "archive and jvm_archive are required",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := &Document{States: []map[string]interface{}{tt.raw}}
			_, err := doc.BuildStates()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
