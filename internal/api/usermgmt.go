package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gocentral/gocentral/internal/central"
)

const (
	rbacUsersPath = "/platform/rbac/v1/users"
	rbacRolesPath = "/platform/rbac/v1/roles"
	rbacAppsPath  = "/platform/rbac/v1/apps"
)

// UserManagement wraps the RBAC user and role endpoints.
type UserManagement struct {
	Client *central.Client
}

// ListUsers lists platform users.
func (u *UserManagement) ListUsers(ctx context.Context, offset, limit int) (*central.Response, error) {
	if u == nil || u.Client == nil {
		return nil, errors.New("user management service is not configured")
	}
	return u.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   rbacUsersPath,
		Params: pageParams(offset, limit),
	})
}

// GetUser returns one user by username.
func (u *UserManagement) GetUser(ctx context.Context, username string) (*central.Response, error) {
	if u == nil || u.Client == nil {
		return nil, errors.New("user management service is not configured")
	}
	if username == "" {
		return nil, errors.New("username is required")
	}
	return u.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   rbacUsersPath + "/" + url.PathEscape(username),
	})
}

// CreateUser creates a platform user. The user document follows the
// gateway's schema (username, description, name, roles, ...).
func (u *UserManagement) CreateUser(ctx context.Context, user map[string]any) (*central.Response, error) {
	if u == nil || u.Client == nil {
		return nil, errors.New("user management service is not configured")
	}
	if len(user) == 0 {
		return nil, errors.New("user document is required")
	}
	return u.Client.Execute(ctx, &central.Request{
		Method: http.MethodPost,
		Path:   rbacUsersPath,
		Body:   user,
	})
}

// UpdateUser replaces a user document.
func (u *UserManagement) UpdateUser(ctx context.Context, username string, user map[string]any) (*central.Response, error) {
	if u == nil || u.Client == nil {
		return nil, errors.New("user management service is not configured")
	}
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(user) == 0 {
		return nil, errors.New("user document is required")
	}
	return u.Client.Execute(ctx, &central.Request{
		Method: http.MethodPatch,
		Path:   rbacUsersPath + "/" + url.PathEscape(username),
		Body:   user,
	})
}

// DeleteUser removes a platform user.
func (u *UserManagement) DeleteUser(ctx context.Context, username string) (*central.Response, error) {
	if u == nil || u.Client == nil {
		return nil, errors.New("user management service is not configured")
	}
	if username == "" {
		return nil, errors.New("username is required")
	}
	return u.Client.Execute(ctx, &central.Request{
		Method: http.MethodDelete,
		Path:   rbacUsersPath + "/" + url.PathEscape(username),
	})
}

// ListRoles lists roles across apps.
func (u *UserManagement) ListRoles(ctx context.Context, offset, limit int) (*central.Response, error) {
	if u == nil || u.Client == nil {
		return nil, errors.New("user management service is not configured")
	}
	return u.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   rbacRolesPath,
		Params: pageParams(offset, limit),
	})
}

// GetRole returns one role within an app.
func (u *UserManagement) GetRole(ctx context.Context, appName, roleName string) (*central.Response, error) {
	if u == nil || u.Client == nil {
		return nil, errors.New("user management service is not configured")
	}
	if appName == "" || roleName == "" {
		return nil, errors.New("app name and role name are required")
	}
	return u.Client.Execute(ctx, &central.Request{
		Method: http.MethodGet,
		Path:   rbacAppsPath + "/" + url.PathEscape(appName) + "/roles/" + url.PathEscape(roleName),
	})
}
