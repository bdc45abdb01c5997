// Package profiles reads and updates the signed-in user's profile.
package profiles

import (
	"context"

	"github.com/classpoint/classpoint-go/httpclient"
	"github.com/classpoint/classpoint-go/internal/validate"
	"github.com/pkg/errors"
)

// Profile is the signed-in user's account record.
type Profile struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	AvatarURL      string `json:"avatarUrl,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	Role           string `json:"role,omitempty"`
}

// UpdateRequest carries the profile fields a user may change.
type UpdateRequest struct {
	FullName  *string `json:"fullName,omitempty" validate:"omitempty,min=2"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,e164"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// Client performs profile calls.
type Client struct {
	api *httpclient.Client
}

func NewClient(api *httpclient.Client) (*Client, error) {
	if api == nil {
		return nil, errors.New("[profiles.NewClient] api client is required")
	}
	return &Client{api: api}, nil
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var out struct {
		Profile *Profile `json:"profile"`
	}
	if err := c.api.Get(ctx, "/api/profiles/me", &out); err != nil {
		return nil, errors.Wrap(err, "[profiles.Me]")
	}
	return out.Profile, nil
}

// Update patches the signed-in user's profile.
func (c *Client) Update(ctx context.Context, req UpdateRequest) (*Profile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[profiles.Update]")
	}

	var out struct {
		Profile *Profile `json:"profile"`
	}
	if err := c.api.Patch(ctx, "/api/profiles/me", req, &out); err != nil {
		return nil, errors.Wrap(err, "[profiles.Update]")
	}
	return out.Profile, nil
}
