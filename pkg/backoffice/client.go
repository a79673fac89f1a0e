package backoffice

import (
	"github.com/rowneywebster/joyful-cargoparcels/pkg/apiclient"
)

// Client groups the feature-surface operations of the back-office API.
type Client struct {
	api *apiclient.Client
}

// NewClient wraps an API client.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}
