package atlas

import (
	"context"
	"fmt"
	"net/http"
)

// GetCluster returns the named cluster, or nil if Atlas reports it as not found.
func (c *Client) GetCluster(ctx context.Context, groupID, name string) (*Cluster, error) {
	var cluster Cluster
	if err := c.get(ctx, groupPath(groupID, "clusters", name), &cluster); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cluster %s: %w", name, err)
	}
	return &cluster, nil
}

// CreateCluster creates a cluster and returns the representation Atlas sent back.
func (c *Client) CreateCluster(ctx context.Context, groupID string, cluster *Cluster) (*Cluster, error) {
	var created Cluster
	if err := c.send(ctx, http.MethodPost, groupPath(groupID, "clusters"), cluster, &created); err != nil {
		return nil, fmt.Errorf("create cluster %s: %w", cluster.Name, err)
	}
	return &created, nil
}

// DeleteCluster deletes the named cluster.
func (c *Client) DeleteCluster(ctx context.Context, groupID, name string) error {
	if err := c.send(ctx, http.MethodDelete, groupPath(groupID, "clusters", name), nil, nil); err != nil {
		return fmt.Errorf("delete cluster %s: %w", name, err)
	}
	return nil
}
