// Package config loads and validates hostctl state documents.
package config

import (
	"fmt"
	"os"
	"time"
)

// Default connection settings for the host agent.
const (
	DefaultAgentPort = 1129
	DefaultUsername  = "sapadm"
	DefaultTimeout   = 300 * time.Second
)

// Document is a declarative description of the desired host state.
type Document struct {
	// Host is the FQDN of the host agent. Defaults to the local hostname.
	Host string `mapstructure:"host"`

	Agent AgentConfig `mapstructure:"agent"`
	Vault VaultConfig `mapstructure:"vault"`

	// States are applied in order. Each entry carries a type discriminator
	// plus type-specific fields; see BuildStates.
	States []map[string]interface{} `mapstructure:"states"`
}

// AgentConfig holds the host agent connection settings.
type AgentConfig struct {
	Port     int           `mapstructure:"port"`
	Fallback *bool         `mapstructure:"fallback"`
	Insecure bool          `mapstructure:"insecure"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Username string        `mapstructure:"username"`
	// Password is a credential reference (vault:, env:, file: or literal).
	Password string `mapstructure:"password"`
}

// FallbackEnabled reports whether plain-HTTP fallback is permitted.
// It defaults to true, matching the host agent tooling.
func (a AgentConfig) FallbackEnabled() bool {
	return a.Fallback == nil || *a.Fallback
}

// VaultConfig points at the secret store used for vault: references.
type VaultConfig struct {
	Address string `mapstructure:"address"`
	// Token may itself be an env: or file: reference.
	Token string `mapstructure:"token"`
}

// applyDefaults fills unset fields.
func (d *Document) applyDefaults() error {
	if d.Host == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("no host configured and hostname lookup failed: %w", err)
		}
		d.Host = hostname
	}
	if d.Agent.Port == 0 {
		d.Agent.Port = DefaultAgentPort
	}
	if d.Agent.Timeout == 0 {
		d.Agent.Timeout = DefaultTimeout
	}
	if d.Agent.Username == "" {
		d.Agent.Username = DefaultUsername
	}
	return nil
}

// Validate checks the document for errors that would surface mid-apply.
func (d *Document) Validate() error {
	if d.Agent.Port < 1 || d.Agent.Port > 65535 {
		return fmt.Errorf("agent port %d is out of range", d.Agent.Port)
	}
	if d.Agent.Password == "" {
		return fmt.Errorf("agent password is required")
	}
	if len(d.States) == 0 {
		return fmt.Errorf("state document declares no states")
	}
	// Building the states performs the per-type field validation.
	if _, err := d.BuildStates(); err != nil {
		return err
	}
	return nil
}
