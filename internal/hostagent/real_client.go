package hostagent

import (
	"context"
	"fmt"
	"time"

	"github.com/sapops/hostctl/internal/logging"
	"github.com/sapops/hostctl/internal/soap"
	"github.com/sapops/hostctl/internal/util/retry"
)

// Database operation timeouts, mirroring the host agent defaults.
const (
	dbOperationTimeout     = 300
	dbOperationSoftTimeout = 180
)

const (
	logMessageKey       = "LogMsg/Text"
	startSuccessMessage = "StartDatabase successfully executed"
	stopSuccessMessage  = "StopDatabase successfully executed"

	sldRegistrationProperty = "SLDRegistration"
	sldRegStatusProperty    = "SLDREGStatus"

	executeSLDRegOption = "OD-EXECUTESLDREG"
)

// Client implements AgentClient against a real SAP Host Agent.
type Client struct {
	transport *soap.Transport
	sda       *sdaClient
	log       logging.Logger
}

// Ensure interface compliance.
var _ AgentClient = (*Client)(nil)

// NewClient creates a Client for the host agent described by opts.
func NewClient(opts soap.Options) *Client {
	return &Client{
		transport: soap.NewTransport(opts),
		sda:       newSDAClient(opts),
		log:       logging.New("hostagent"),
	}
}

// read performs a read-only operation with backoff on transient failures.
func (c *Client) read(ctx context.Context, operation string, payload, response interface{}) error {
	return retry.Do(ctx, func() error {
		return classify(c.transport.Call(ctx, operation, payload, response))
	}, retry.WithMaxAttempts(3), retry.WithInitialDelay(time.Second))
}

// --- SystemLister ---

// ListSystems returns the SIDs of all installed SAP systems on the host.
func (c *Client) ListSystems(ctx context.Context) ([]string, error) {
	instances, err := c.listInstalledInstances(ctx)
	if err != nil {
		return nil, err
	}
	var sids []string
	seen := map[string]bool{}
	for _, instance := range instances {
		if !seen[instance.SID] {
			seen[instance.SID] = true
			sids = append(sids, instance.SID)
		}
	}
	return sids, nil
}

// ListInstances returns all installed instances of the given SID.
func (c *Client) ListInstances(ctx context.Context, sid string) ([]Instance, error) {
	instances, err := c.listInstalledInstances(ctx)
	if err != nil {
		return nil, err
	}
	var matched []Instance
	for _, instance := range instances {
		if instance.SID == sid {
			matched = append(matched, instance)
		}
	}
	return matched, nil
}

func (c *Client) listInstalledInstances(ctx context.Context) ([]Instance, error) {
	req := listInstancesRequest{
		Selector: &instanceSelector{InstanceStatus: installedSelector},
	}
	var resp listInstancesResponse
	if err := c.read(ctx, "ListInstances", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	instances := make([]Instance, 0, len(resp.Instances))
	for _, wire := range resp.Instances {
		instances = append(instances, Instance{
			SID:          wire.SID,
			Hostname:     wire.Hostname,
			SystemNumber: wire.SystemNumber,
		})
	}
	return instances, nil
}

// --- DatabaseManager ---

// ListDatabaseSystems returns all database systems on the host.
func (c *Client) ListDatabaseSystems(ctx context.Context) ([]DatabaseSystem, error) {
	var resp listDatabaseSystemsResponse
	if err := c.read(ctx, "ListDatabaseSystems", listDatabaseSystemsRequest{}, &resp); err != nil {
		return nil, fmt.Errorf("failed to list database systems: %w", err)
	}

	var systems []DatabaseSystem
	for _, wire := range resp.Databases {
		system := DatabaseSystem{}
		for _, prop := range wire.Database {
			switch prop.Key {
			case "Database/Name":
				system.Name = prop.Value
			case "Database/Type":
				system.Type = prop.Value
			case "Database/Release":
				system.Version = prop.Value
			}
		}
		for _, prop := range wire.Properties {
			if prop.Key == "ConnectAddress" {
				system.ConnectString = prop.Value
			}
		}
		for _, wireInstance := range wire.Instances {
			instance := DatabaseInstance{}
			for _, prop := range wireInstance.Instance {
				switch prop.Key {
				case "Database/InstanceName":
					instance.Name = prop.Value
				case "Database/Host":
					instance.Host = prop.Value
				}
			}
			if instance != (DatabaseInstance{}) {
				system.Instances = append(system.Instances, instance)
			}
		}
		if system.Name != "" {
			systems = append(systems, system)
		}
	}
	return systems, nil
}

// GetDatabaseStatus returns the status of a database.
func (c *Client) GetDatabaseStatus(ctx context.Context, name, dbType string) (string, error) {
	req := getDatabaseStatusRequest{
		Arguments: databaseArguments(name, dbType),
	}
	var resp getDatabaseStatusResponse
	if err := c.read(ctx, "GetDatabaseStatus", req, &resp); err != nil {
		return "", fmt.Errorf("failed to get database status: %w", err)
	}
	if resp.Status == "" {
		return "", &notFoundError{kind: "database", name: name}
	}
	return resp.Status, nil
}

// StartDatabase starts a database. Success is determined by the operation
// result messages, not by transport success.
func (c *Client) StartDatabase(ctx context.Context, name, dbType string) error {
	req := startDatabaseRequest{
		Arguments: databaseArguments(name, dbType),
		Options:   defaultOperationOptions(),
	}
	var resp startDatabaseResponse
	if err := c.transport.Call(ctx, "StartDatabase", req, &resp); err != nil {
		return fmt.Errorf("failed to start database %s: %w", name, err)
	}
	return checkOperationResults(resp.Results, startSuccessMessage, "start", name)
}

// StopDatabase stops a database.
func (c *Client) StopDatabase(ctx context.Context, name, dbType string) error {
	req := stopDatabaseRequest{
		Arguments: databaseArguments(name, dbType),
		Options:   defaultOperationOptions(),
	}
	var resp stopDatabaseResponse
	if err := c.transport.Call(ctx, "StopDatabase", req, &resp); err != nil {
		return fmt.Errorf("failed to stop database %s: %w", name, err)
	}
	return checkOperationResults(resp.Results, stopSuccessMessage, "stop", name)
}

func databaseArguments(name, dbType string) propertyList {
	return propertyList{Items: []property{
		{Key: "Database/Type", Value: dbType},
		{Key: "Database/Name", Value: name},
	}}
}

func defaultOperationOptions() operationOptions {
	return operationOptions{
		Timeout:     dbOperationTimeout,
		SoftTimeout: dbOperationSoftTimeout,
	}
}

func checkOperationResults(results []operationResult, wantMessage, verb, name string) error {
	if len(results) == 0 {
		return ErrOperationTimeout
	}
	for _, result := range results {
		if result.MessageKey == logMessageKey && result.MessageValue == wantMessage {
			return nil
		}
	}
	return fmt.Errorf("host agent did not confirm %s of database %s", verb, name)
}

// --- DiscoveryManager ---

// ConfigureOutsideDiscovery writes the SLD destination configuration.
func (c *Client) ConfigureOutsideDiscovery(ctx context.Context, dest Destination) error {
	req := configureOutsideDiscoveryRequest{
		Configuration: odConfiguration{
			Destinations: odDestinations{Items: []odDestination{{
				Host:     dest.Host,
				Port:     dest.Port,
				Username: dest.Username,
				Password: dest.Password,
				UseSSL:   dest.UseSSL,
			}}},
		},
	}
	var resp configureOutsideDiscoveryResponse
	if err := c.transport.Call(ctx, "ConfigureOutsideDiscovery", req, &resp); err != nil {
		return fmt.Errorf("failed to configure outside discovery: %w", err)
	}
	for _, member := range resp.Members {
		for _, prop := range member.Properties {
			if prop.Name == sldRegistrationProperty && prop.Value == "Enabled" {
				return nil
			}
		}
	}
	return fmt.Errorf("host agent did not enable SLD registration for %s", dest.Host)
}

// ExecuteOutsideDiscovery triggers SLD registration with the configured
// destinations.
func (c *Client) ExecuteOutsideDiscovery(ctx context.Context) error {
	req := executeOutsideDiscoveryRequest{
		Options: executeOptions{Items: []string{executeSLDRegOption}},
	}
	var resp executeOutsideDiscoveryResponse
	if err := c.transport.Call(ctx, "ExecuteOutsideDiscovery", req, &resp); err != nil {
		return fmt.Errorf("failed to execute outside discovery: %w", err)
	}
	for _, member := range resp.Members {
		for _, prop := range member.Properties {
			if prop.Name == sldRegStatusProperty && prop.Value == "OK" {
				return nil
			}
		}
	}
	return fmt.Errorf("outside discovery did not report successful SLD registration")
}

// --- SDAManager ---

// PingSDA returns the installed SDA software version.
func (c *Client) PingSDA(ctx context.Context, verify bool) (string, error) {
	return c.sda.ping(ctx, verify)
}

// DeploySDA uploads the SDA and JVM archives to the host agent.
func (c *Client) DeploySDA(ctx context.Context, sdaArchive, jvmArchive string, verify bool) error {
	return c.sda.deploy(ctx, sdaArchive, jvmArchive, verify)
}
