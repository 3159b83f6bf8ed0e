package testing

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/imamik/atlasctl/internal/platform/atlas"
)

// ProjectFixture is an in-memory Atlas project behind an atlas.MockClient.
// Creates, updates and deletes change what later Get calls return.
type ProjectFixture struct {
	mu       sync.Mutex
	mock     *atlas.MockClient
	clusters map[string]*atlas.Cluster
	users    map[string]*atlas.DatabaseUser
	failures map[string]error
}

// NewProjectFixture creates an empty project.
func NewProjectFixture() *ProjectFixture {
	f := &ProjectFixture{
		mock:     &atlas.MockClient{},
		clusters: make(map[string]*atlas.Cluster),
		users:    make(map[string]*atlas.DatabaseUser),
		failures: make(map[string]error),
	}
	f.wire()
	return f
}

// Client returns the mock, which records every call.
func (f *ProjectFixture) Client() *atlas.MockClient {
	return f.mock
}

// WithCluster seeds an existing cluster.
func (f *ProjectFixture) WithCluster(c atlas.Cluster) *ProjectFixture {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.StateName == "" {
		c.StateName = "IDLE"
	}
	f.clusters[c.Name] = &c
	return f
}

// WithUser seeds an existing database user.
func (f *ProjectFixture) WithUser(u atlas.DatabaseUser) *ProjectFixture {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Password = ""
	f.users[u.Username] = &u
	return f
}

// FailOn makes every call for the given key fail with err.
func (f *ProjectFixture) FailOn(key string, err error) *ProjectFixture {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[key] = err
	return f
}

// Cluster returns the stored cluster, or nil.
func (f *ProjectFixture) Cluster(name string) *atlas.Cluster {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clusters[name]
}

// User returns the stored user, or nil. Passwords are never stored.
func (f *ProjectFixture) User(username string) *atlas.DatabaseUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[username]
}

func notFound(kind, key string) error {
	return &atlas.APIError{
		Method:     http.MethodGet,
		StatusCode: http.StatusNotFound,
		Detail:     fmt.Sprintf("No %s named %s exists.", kind, key),
	}
}

func (f *ProjectFixture) wire() {
	f.mock.GetClusterFunc = func(_ context.Context, _, name string) (*atlas.Cluster, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if err := f.failures[name]; err != nil {
			return nil, err
		}
		if c, ok := f.clusters[name]; ok {
			cp := *c
			return &cp, nil
		}
		return nil, nil
	}
	f.mock.CreateClusterFunc = func(_ context.Context, groupID string, c *atlas.Cluster) (*atlas.Cluster, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if err := f.failures[c.Name]; err != nil {
			return nil, err
		}
		stored := *c
		stored.GroupID = groupID
		stored.ID = "cluster-" + c.Name
		stored.StateName = "CREATING"
		f.clusters[c.Name] = &stored
		cp := stored
		return &cp, nil
	}
	f.mock.DeleteClusterFunc = func(_ context.Context, _, name string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.clusters[name]; !ok {
			return notFound("cluster", name)
		}
		delete(f.clusters, name)
		return nil
	}

	f.mock.GetDatabaseUserFunc = func(_ context.Context, _, username string) (*atlas.DatabaseUser, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if err := f.failures[username]; err != nil {
			return nil, err
		}
		if u, ok := f.users[username]; ok {
			cp := *u
			cp.Roles = append([]atlas.Role(nil), u.Roles...)
			return &cp, nil
		}
		return nil, nil
	}
	f.mock.CreateDatabaseUserFunc = func(_ context.Context, _ string, u *atlas.DatabaseUser) (*atlas.DatabaseUser, error) {
		return f.storeUser(u)
	}
	f.mock.UpdateDatabaseUserFunc = func(_ context.Context, _, _ string, u *atlas.DatabaseUser) (*atlas.DatabaseUser, error) {
		return f.storeUser(u)
	}
	f.mock.DeleteDatabaseUserFunc = func(_ context.Context, _, username string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.users[username]; !ok {
			return notFound("user", username)
		}
		delete(f.users, username)
		return nil
	}
}

func (f *ProjectFixture) storeUser(u *atlas.DatabaseUser) (*atlas.DatabaseUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures[u.Username]; err != nil {
		return nil, err
	}
	stored := *u
	stored.Password = ""
	stored.Roles = append([]atlas.Role{}, u.Roles...)
	f.users[u.Username] = &stored
	cp := stored
	return &cp, nil
}
