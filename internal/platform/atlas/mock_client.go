package atlas

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of Manager. Unset funcs fall back to
// defaults: resources are absent, writes succeed and echo their input.
type MockClient struct {
	GetClusterFunc    func(ctx context.Context, groupID, name string) (*Cluster, error)
	CreateClusterFunc func(ctx context.Context, groupID string, cluster *Cluster) (*Cluster, error)
	DeleteClusterFunc func(ctx context.Context, groupID, name string) error

	GetDatabaseUserFunc    func(ctx context.Context, groupID, username string) (*DatabaseUser, error)
	CreateDatabaseUserFunc func(ctx context.Context, groupID string, user *DatabaseUser) (*DatabaseUser, error)
	UpdateDatabaseUserFunc func(ctx context.Context, groupID, username string, user *DatabaseUser) (*DatabaseUser, error)
	DeleteDatabaseUserFunc func(ctx context.Context, groupID, username string) error

	mu    sync.Mutex
	calls []string
}

var _ Manager = (*MockClient)(nil)

// Calls returns the names of the methods invoked so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// WriteCalls returns how many create, update or delete calls were made.
func (m *MockClient) WriteCalls() int {
	n := 0
	for _, c := range m.Calls() {
		switch c {
		case "GetCluster", "GetDatabaseUser":
		default:
			n++
		}
	}
	return n
}

func (m *MockClient) record(name string) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
}

func (m *MockClient) GetCluster(ctx context.Context, groupID, name string) (*Cluster, error) {
	m.record("GetCluster")
	if m.GetClusterFunc != nil {
		return m.GetClusterFunc(ctx, groupID, name)
	}
	return nil, nil
}

func (m *MockClient) CreateCluster(ctx context.Context, groupID string, cluster *Cluster) (*Cluster, error) {
	m.record("CreateCluster")
	if m.CreateClusterFunc != nil {
		return m.CreateClusterFunc(ctx, groupID, cluster)
	}
	return cluster, nil
}

func (m *MockClient) DeleteCluster(ctx context.Context, groupID, name string) error {
	m.record("DeleteCluster")
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, groupID, name)
	}
	return nil
}

func (m *MockClient) GetDatabaseUser(ctx context.Context, groupID, username string) (*DatabaseUser, error) {
	m.record("GetDatabaseUser")
	if m.GetDatabaseUserFunc != nil {
		return m.GetDatabaseUserFunc(ctx, groupID, username)
	}
	return nil, nil
}

func (m *MockClient) CreateDatabaseUser(ctx context.Context, groupID string, user *DatabaseUser) (*DatabaseUser, error) {
	m.record("CreateDatabaseUser")
	if m.CreateDatabaseUserFunc != nil {
		return m.CreateDatabaseUserFunc(ctx, groupID, user)
	}
	return user, nil
}

func (m *MockClient) UpdateDatabaseUser(ctx context.Context, groupID, username string, user *DatabaseUser) (*DatabaseUser, error) {
	m.record("UpdateDatabaseUser")
	if m.UpdateDatabaseUserFunc != nil {
		return m.UpdateDatabaseUserFunc(ctx, groupID, username, user)
	}
	return user, nil
}

func (m *MockClient) DeleteDatabaseUser(ctx context.Context, groupID, username string) error {
	m.record("DeleteDatabaseUser")
	if m.DeleteDatabaseUserFunc != nil {
		return m.DeleteDatabaseUserFunc(ctx, groupID, username)
	}
	return nil
}
