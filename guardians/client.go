// Package guardians covers CRUD on guardian records: the parents and carers
// linked to students in an organization.
package guardians

import (
	"context"
	"net/url"
	"time"

	"github.com/classpoint/classpoint-go/httpclient"
	"github.com/classpoint/classpoint-go/internal/validate"
	"github.com/pkg/errors"
)

// Guardian is a parent or carer linked to one or more students.
type Guardian struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Relation   string    `json:"relation,omitempty"` // e.g. "mother", "uncle"
	StudentIDs []string  `json:"studentIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateRequest is the payload for registering a guardian.
type CreateRequest struct {
	FullName   string   `json:"fullName" validate:"required,min=2"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Relation   string   `json:"relation,omitempty"`
	StudentIDs []string `json:"studentIds,omitempty" validate:"omitempty,dive,required"`
}

// UpdateRequest carries the mutable guardian fields. Nil fields are left
// untouched by the backend.
type UpdateRequest struct {
	FullName   *string  `json:"fullName,omitempty" validate:"omitempty,min=2"`
	Email      *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string  `json:"phone,omitempty" validate:"omitempty,e164"`
	Relation   *string  `json:"relation,omitempty"`
	StudentIDs []string `json:"studentIds,omitempty" validate:"omitempty,dive,required"`
}

// Client performs guardian CRUD calls.
type Client struct {
	api *httpclient.Client
}

func NewClient(api *httpclient.Client) (*Client, error) {
	if api == nil {
		return nil, errors.New("[guardians.NewClient] api client is required")
	}
	return &Client{api: api}, nil
}

// List returns the organization's guardians.
func (c *Client) List(ctx context.Context) ([]Guardian, error) {
	var out struct {
		Guardians []Guardian `json:"guardians"`
	}
	if err := c.api.Get(ctx, "/api/guardians", &out); err != nil {
		return nil, errors.Wrap(err, "[guardians.List]")
	}
	return out.Guardians, nil
}

// Get returns a single guardian by ID.
func (c *Client) Get(ctx context.Context, id string) (*Guardian, error) {
	var out struct {
		Guardian *Guardian `json:"guardian"`
	}
	if err := c.api.Get(ctx, "/api/guardians/"+url.PathEscape(id), &out); err != nil {
		return nil, errors.Wrap(err, "[guardians.Get]")
	}
	return out.Guardian, nil
}

// Create registers a guardian. The payload is validated before any request
// is sent.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Guardian, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[guardians.Create]")
	}

	var out struct {
		Guardian *Guardian `json:"guardian"`
	}
	if err := c.api.Post(ctx, "/api/guardians", req, &out); err != nil {
		return nil, errors.Wrap(err, "[guardians.Create]")
	}
	return out.Guardian, nil
}

// Update patches a guardian's mutable fields.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (*Guardian, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[guardians.Update]")
	}

	var out struct {
		Guardian *Guardian `json:"guardian"`
	}
	if err := c.api.Patch(ctx, "/api/guardians/"+url.PathEscape(id), req, &out); err != nil {
		return nil, errors.Wrap(err, "[guardians.Update]")
	}
	return out.Guardian, nil
}

// Delete removes a guardian record.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/api/guardians/"+url.PathEscape(id)); err != nil {
		return errors.Wrap(err, "[guardians.Delete]")
	}
	return nil
}
