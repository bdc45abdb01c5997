// Package organizations exposes the admin actions on organizations: listing
// by review status, approval, and rejection.
package organizations

import (
	"context"
	"net/url"
	"time"

	"github.com/classpoint/classpoint-go/httpclient"
	"github.com/pkg/errors"
)

// Status is an organization's review state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

// Organization is a school registered on the platform.
type Organization struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Status       Status    `json:"status"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	StudentCount int       `json:"studentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Client performs organization admin calls.
type Client struct {
	api *httpclient.Client
}

func NewClient(api *httpclient.Client) (*Client, error) {
	if api == nil {
		return nil, errors.New("[organizations.NewClient] api client is required")
	}
	return &Client{api: api}, nil
}

// List returns organizations, optionally filtered by review status.
// An empty status lists all organizations.
func (c *Client) List(ctx context.Context, status Status) ([]Organization, error) {
	path := "/api/admin/organizations"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var out struct {
		Organizations []Organization `json:"organizations"`
	}
	if err := c.api.Get(ctx, path, &out); err != nil {
		return nil, errors.Wrap(err, "[organizations.List]")
	}
	return out.Organizations, nil
}

// Get returns a single organization by ID.
func (c *Client) Get(ctx context.Context, id string) (*Organization, error) {
	var out struct {
		Organization *Organization `json:"organization"`
	}
	if err := c.api.Get(ctx, "/api/admin/organizations/"+url.PathEscape(id), &out); err != nil {
		return nil, errors.Wrap(err, "[organizations.Get]")
	}
	return out.Organization, nil
}

// Approve moves a pending organization to approved.
func (c *Client) Approve(ctx context.Context, id string) error {
	path := "/api/admin/organizations/" + url.PathEscape(id) + "/approve"
	if err := c.api.Post(ctx, path, nil, nil); err != nil {
		return errors.Wrap(err, "[organizations.Approve]")
	}
	return nil
}

// Reject moves a pending organization to rejected, recording the reason.
func (c *Client) Reject(ctx context.Context, id, reason string) error {
	path := "/api/admin/organizations/" + url.PathEscape(id) + "/reject"
	body := map[string]string{"reason": reason}
	if err := c.api.Post(ctx, path, body, nil); err != nil {
		return errors.Wrap(err, "[organizations.Reject]")
	}
	return nil
}
