package hostagent

import "context"

// MockClient is a mock implementation of AgentClient.
type MockClient struct {
	ListSystemsFunc         func(ctx context.Context) ([]string, error)
	ListInstancesFunc       func(ctx context.Context, sid string) ([]Instance, error)
	ListDatabaseSystemsFunc func(ctx context.Context) ([]DatabaseSystem, error)
	GetDatabaseStatusFunc   func(ctx context.Context, name, dbType string) (string, error)
	StartDatabaseFunc       func(ctx context.Context, name, dbType string) error
	StopDatabaseFunc        func(ctx context.Context, name, dbType string) error

	ConfigureOutsideDiscoveryFunc func(ctx context.Context, dest Destination) error
	ExecuteOutsideDiscoveryFunc   func(ctx context.Context) error

	PingSDAFunc   func(ctx context.Context, verify bool) (string, error)
	DeploySDAFunc func(ctx context.Context, sdaArchive, jvmArchive string, verify bool) error
}

// Ensure interface compliance.
var _ AgentClient = (*MockClient)(nil)

// ListSystems mocks system listing.
func (m *MockClient) ListSystems(ctx context.Context) ([]string, error) {
	if m.ListSystemsFunc != nil {
		return m.ListSystemsFunc(ctx)
	}
	return nil, nil
}

// ListInstances mocks instance listing.
func (m *MockClient) ListInstances(ctx context.Context, sid string) ([]Instance, error) {
	if m.ListInstancesFunc != nil {
		return m.ListInstancesFunc(ctx, sid)
	}
	return nil, nil
}

// ListDatabaseSystems mocks database system listing.
func (m *MockClient) ListDatabaseSystems(ctx context.Context) ([]DatabaseSystem, error) {
	if m.ListDatabaseSystemsFunc != nil {
		return m.ListDatabaseSystemsFunc(ctx)
	}
	return nil, nil
}

// GetDatabaseStatus mocks database status retrieval.
func (m *MockClient) GetDatabaseStatus(ctx context.Context, name, dbType string) (string, error) {
	if m.GetDatabaseStatusFunc != nil {
		return m.GetDatabaseStatusFunc(ctx, name, dbType)
	}
	return "", nil
}

// StartDatabase mocks database start.
func (m *MockClient) StartDatabase(ctx context.Context, name, dbType string) error {
	if m.StartDatabaseFunc != nil {
		return m.StartDatabaseFunc(ctx, name, dbType)
	}
	return nil
}

// StopDatabase mocks database stop.
func (m *MockClient) StopDatabase(ctx context.Context, name, dbType string) error {
	if m.StopDatabaseFunc != nil {
		return m.StopDatabaseFunc(ctx, name, dbType)
	}
	return nil
}

// ConfigureOutsideDiscovery mocks SLD configuration.
func (m *MockClient) ConfigureOutsideDiscovery(ctx context.Context, dest Destination) error {
	if m.ConfigureOutsideDiscoveryFunc != nil {
		return m.ConfigureOutsideDiscoveryFunc(ctx, dest)
	}
	return nil
}

// ExecuteOutsideDiscovery mocks SLD registration.
func (m *MockClient) ExecuteOutsideDiscovery(ctx context.Context) error {
	if m.ExecuteOutsideDiscoveryFunc != nil {
		return m.ExecuteOutsideDiscoveryFunc(ctx)
	}
	return nil
}

// PingSDA mocks the SDA version probe.
func (m *MockClient) PingSDA(ctx context.Context, verify bool) (string, error) {
	if m.PingSDAFunc != nil {
		return m.PingSDAFunc(ctx, verify)
	}
	return "", ErrSDANotInstalled
}

// DeploySDA mocks the SDA upload.
func (m *MockClient) DeploySDA(ctx context.Context, sdaArchive, jvmArchive string, verify bool) error {
	if m.DeploySDAFunc != nil {
		return m.DeploySDAFunc(ctx, sdaArchive, jvmArchive, verify)
	}
	return nil
}
