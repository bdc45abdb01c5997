// Package staff covers CRUD on staff records and the groups (classes) a
// staff member actively teaches.
package staff

import (
	"context"
	"net/url"
	"time"

	"github.com/classpoint/classpoint-go/httpclient"
	"github.com/classpoint/classpoint-go/internal/validate"
	"github.com/pkg/errors"
)

// Member is a staff record: teachers, administrators, support staff.
type Member struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // e.g. "teacher", "admin"
	Subjects  []string  `json:"subjects,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Group is a class or student group a staff member teaches.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}

// CreateRequest is the payload for registering a staff member.
type CreateRequest struct {
	FullName string   `json:"fullName" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Role     string   `json:"role" validate:"required,oneof=teacher admin support"`
	Subjects []string `json:"subjects,omitempty" validate:"omitempty,dive,required"`
}

// UpdateRequest carries the mutable staff fields.
type UpdateRequest struct {
	FullName *string  `json:"fullName,omitempty" validate:"omitempty,min=2"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string  `json:"role,omitempty" validate:"omitempty,oneof=teacher admin support"`
	Subjects []string `json:"subjects,omitempty" validate:"omitempty,dive,required"`
	Active   *bool    `json:"active,omitempty"`
}

// Client performs staff CRUD calls.
type Client struct {
	api *httpclient.Client
}

func NewClient(api *httpclient.Client) (*Client, error) {
	if api == nil {
		return nil, errors.New("[staff.NewClient] api client is required")
	}
	return &Client{api: api}, nil
}

// List returns the organization's staff members.
func (c *Client) List(ctx context.Context) ([]Member, error) {
	var out struct {
		Staff []Member `json:"staff"`
	}
	if err := c.api.Get(ctx, "/api/staff", &out); err != nil {
		return nil, errors.Wrap(err, "[staff.List]")
	}
	return out.Staff, nil
}

// Get returns a single staff member by ID.
func (c *Client) Get(ctx context.Context, id string) (*Member, error) {
	var out struct {
		Staff *Member `json:"staff"`
	}
	if err := c.api.Get(ctx, "/api/staff/"+url.PathEscape(id), &out); err != nil {
		return nil, errors.Wrap(err, "[staff.Get]")
	}
	return out.Staff, nil
}

// ActiveGroups returns the groups a staff member actively teaches. A failed
// fetch is reported as an error rather than an empty list, so callers can
// tell "no groups" from "fetch failed".
func (c *Client) ActiveGroups(ctx context.Context, id string) ([]Group, error) {
	var out struct {
		Groups []Group `json:"groups"`
	}
	if err := c.api.Get(ctx, "/api/staff/"+url.PathEscape(id)+"/groups?active=true", &out); err != nil {
		return nil, errors.Wrap(err, "[staff.ActiveGroups]")
	}
	return out.Groups, nil
}

// Create registers a staff member. The payload is validated before any
// request is sent.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Member, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[staff.Create]")
	}

	var out struct {
		Staff *Member `json:"staff"`
	}
	if err := c.api.Post(ctx, "/api/staff", req, &out); err != nil {
		return nil, errors.Wrap(err, "[staff.Create]")
	}
	return out.Staff, nil
}

// Update patches a staff member's mutable fields.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (*Member, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[staff.Update]")
	}

	var out struct {
		Staff *Member `json:"staff"`
	}
	if err := c.api.Patch(ctx, "/api/staff/"+url.PathEscape(id), req, &out); err != nil {
		return nil, errors.Wrap(err, "[staff.Update]")
	}
	return out.Staff, nil
}

// Delete removes a staff record.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/api/staff/"+url.PathEscape(id)); err != nil {
		return errors.Wrap(err, "[staff.Delete]")
	}
	return nil
}
