// Package hostagent provides a typed client for the SAP Host Agent control
// interface.
package hostagent

import (
	"context"
)

// SystemLister defines the interface for SAP system and instance discovery.
type SystemLister interface {
	// ListSystems returns the SIDs of all installed SAP systems on the host.
	ListSystems(ctx context.Context) ([]string, error)

	// ListInstances returns all installed instances of the given SID.
	ListInstances(ctx context.Context, sid string) ([]Instance, error)
}

// DatabaseManager defines the interface for database lifecycle operations.
type DatabaseManager interface {
	// ListDatabaseSystems returns all database systems on the host,
	// including their instances and connection information.
	ListDatabaseSystems(ctx context.Context) ([]DatabaseSystem, error)

	// GetDatabaseStatus returns the status of a database.
	GetDatabaseStatus(ctx context.Context, name, dbType string) (string, error)

	// StartDatabase starts a database. For type "hdb" all tenants start.
	StartDatabase(ctx context.Context, name, dbType string) error

	// StopDatabase stops a database.
	StopDatabase(ctx context.Context, name, dbType string) error
}

// DiscoveryManager defines the interface for SLD outside discovery.
type DiscoveryManager interface {
	// ConfigureOutsideDiscovery writes the SLD destination configuration.
	ConfigureOutsideDiscovery(ctx context.Context, dest Destination) error

	// ExecuteOutsideDiscovery triggers SLD registration with the configured
	// destinations. It requires a prior ConfigureOutsideDiscovery.
	ExecuteOutsideDiscovery(ctx context.Context) error
}

// SDAManager defines the interface for the Simple Diagnostics Agent plugin.
type SDAManager interface {
	// PingSDA returns the installed SDA software version, or
	// ErrSDANotInstalled when the agent does not respond to the ping
	// service. verify toggles TLS certificate verification of the SDA
	// session.
	PingSDA(ctx context.Context, verify bool) (string, error)

	// DeploySDA uploads the SDA and JVM archives to the host agent.
	DeploySDA(ctx context.Context, sdaArchive, jvmArchive string, verify bool) error
}

// AgentClient is the full control surface of a host agent.
type AgentClient interface {
	SystemLister
	DatabaseManager
	DiscoveryManager
	SDAManager
}
