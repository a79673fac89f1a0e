package backoffice

import "context"

// BusinessSettings are the company-wide presentation settings.
type BusinessSettings struct {
	BusinessName string `json:"business_name"`
	ContactInfo  string `json:"contact_info"`
	Address      string `json:"address"`
	LogoURL      string `json:"logo_url,omitempty"`
	Currency     string `json:"currency"`
	Timezone     string `json:"timezone"`
}

// GetBusinessSettings fetches the current business settings.
func (c *Client) GetBusinessSettings(ctx context.Context) (*BusinessSettings, error) {
	var settings BusinessSettings
	if err := c.api.Get(ctx, "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateBusinessSettings replaces the business settings. Admin only.
func (c *Client) UpdateBusinessSettings(ctx context.Context, in BusinessSettings) (*BusinessSettings, error) {
	var settings BusinessSettings
	if err := c.api.Put(ctx, "/settings", in, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
