package atlas

import (
	"context"
	"fmt"
	"net/http"
)

// GetDatabaseUser returns the user from the admin database, or nil if Atlas
// reports it as not found.
func (c *Client) GetDatabaseUser(ctx context.Context, groupID, username string) (*DatabaseUser, error) {
	var user DatabaseUser
	if err := c.get(ctx, groupPath(groupID, "databaseUsers", AdminDatabase, username), &user); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get database user %s: %w", username, err)
	}
	return &user, nil
}

// CreateDatabaseUser creates a database user.
func (c *Client) CreateDatabaseUser(ctx context.Context, groupID string, user *DatabaseUser) (*DatabaseUser, error) {
	var created DatabaseUser
	if err := c.send(ctx, http.MethodPost, groupPath(groupID, "databaseUsers"), user, &created); err != nil {
		return nil, fmt.Errorf("create database user %s: %w", user.Username, err)
	}
	return &created, nil
}

// UpdateDatabaseUser patches an existing database user. Fields left empty in
// user are not sent, except roles which always replace the current grants.
func (c *Client) UpdateDatabaseUser(ctx context.Context, groupID, username string, user *DatabaseUser) (*DatabaseUser, error) {
	var updated DatabaseUser
	path := groupPath(groupID, "databaseUsers", AdminDatabase, username)
	if err := c.send(ctx, http.MethodPatch, path, user, &updated); err != nil {
		return nil, fmt.Errorf("update database user %s: %w", username, err)
	}
	return &updated, nil
}

// DeleteDatabaseUser deletes the user from the admin database.
func (c *Client) DeleteDatabaseUser(ctx context.Context, groupID, username string) error {
	if err := c.send(ctx, http.MethodDelete, groupPath(groupID, "databaseUsers", AdminDatabase, username), nil, nil); err != nil {
		return fmt.Errorf("delete database user %s: %w", username, err)
	}
	return nil
}
