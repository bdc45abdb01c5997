// Package announcements lists and publishes organization announcements.
package announcements

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/classpoint/classpoint-go/httpclient"
	"github.com/classpoint/classpoint-go/internal/validate"
	"github.com/pkg/errors"
)

// Audience selects who an announcement is shown to.
type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceStaff     Audience = "staff"
	AudienceGuardians Audience = "guardians"
)

// Announcement is a message published to an organization's members.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  Audience  `json:"audience"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRequest is the payload for publishing an announcement.
type CreateRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=200"`
	Body     string   `json:"body" validate:"required"`
	Audience Audience `json:"audience" validate:"required,oneof=all staff guardians"`
}

// Client performs announcement calls.
type Client struct {
	api *httpclient.Client
}

func NewClient(api *httpclient.Client) (*Client, error) {
	if api == nil {
		return nil, errors.New("[announcements.NewClient] api client is required")
	}
	return &Client{api: api}, nil
}

// List returns announcements, newest first. limit <= 0 lets the backend pick
// its default page size.
func (c *Client) List(ctx context.Context, limit int) ([]Announcement, error) {
	path := "/api/announcements"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out struct {
		Announcements []Announcement `json:"announcements"`
	}
	if err := c.api.Get(ctx, path, &out); err != nil {
		return nil, errors.Wrap(err, "[announcements.List]")
	}
	return out.Announcements, nil
}

// Create publishes an announcement. The payload is validated before any
// request is sent.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Announcement, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[announcements.Create]")
	}

	var out struct {
		Announcement *Announcement `json:"announcement"`
	}
	if err := c.api.Post(ctx, "/api/announcements", req, &out); err != nil {
		return nil, errors.Wrap(err, "[announcements.Create]")
	}
	return out.Announcement, nil
}

// Delete removes an announcement.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/api/announcements/"+url.PathEscape(id)); err != nil {
		return errors.Wrap(err, "[announcements.Delete]")
	}
	return nil
}
