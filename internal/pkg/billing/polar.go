package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	PolarSandboxAPIBaseURL    = "https://sandbox-api.polar.sh"
	PolarProductionAPIBaseURL = "https://api.polar.sh"
)

// PolarClient talks to the Polar REST API with a server access token.
type PolarClient struct {
	AccessToken string
	APIBaseURL  string
	HTTPClient  *http.Client
}

// PolarAPIBaseURL maps the configured server name to its API host.
func PolarAPIBaseURL(server string) string {
	if strings.EqualFold(strings.TrimSpace(server), "production") {
		return PolarProductionAPIBaseURL
	}
	return PolarSandboxAPIBaseURL
}

func NewPolarClient(accessToken, server string) *PolarClient {
	return &PolarClient{
		AccessToken: strings.TrimSpace(accessToken),
		APIBaseURL:  PolarAPIBaseURL(server),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type PolarCustomer struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id"`
}

type PolarCheckout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type PolarCustomerSession struct {
	Token             string `json:"token"`
	CustomerPortalURL string `json:"customer_portal_url"`
}

// CreateCustomer registers a customer whose external_id is the local
// user's external id, so paid orders can be traced back to the user.
func (c *PolarClient) CreateCustomer(ctx context.Context, email, name, externalID string) (*PolarCustomer, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(externalID) == "" {
		return nil, errors.New("email and external id are required")
	}
	in := map[string]string{
		"email":       strings.TrimSpace(email),
		"name":        strings.TrimSpace(name),
		"external_id": strings.TrimSpace(externalID),
	}
	var out PolarCustomer
	if err := c.post(ctx, "/v1/customers/", in, &out); err != nil {
		return nil, fmt.Errorf("polar create customer: %w", err)
	}
	return &out, nil
}

// CreateCheckout opens a checkout session for the given products on behalf
// of the customer with the given external id.
func (c *PolarClient) CreateCheckout(ctx context.Context, productIDs []string, externalCustomerID, successURL string) (*PolarCheckout, error) {
	if len(productIDs) == 0 {
		return nil, errors.New("at least one product is required")
	}
	if strings.TrimSpace(externalCustomerID) == "" {
		return nil, ErrMissingCustomerReference
	}
	in := map[string]any{
		"products":             productIDs,
		"external_customer_id": externalCustomerID,
	}
	if successURL != "" {
		in["success_url"] = successURL
	}
	var out PolarCheckout
	if err := c.post(ctx, "/v1/checkouts/", in, &out); err != nil {
		return nil, fmt.Errorf("polar create checkout: %w", err)
	}
	if out.URL == "" {
		return nil, errors.New("polar create checkout: response missing url")
	}
	return &out, nil
}

// CreateCustomerSession returns an authenticated customer portal link.
func (c *PolarClient) CreateCustomerSession(ctx context.Context, externalCustomerID string) (*PolarCustomerSession, error) {
	if strings.TrimSpace(externalCustomerID) == "" {
		return nil, ErrMissingCustomerReference
	}
	in := map[string]string{"external_customer_id": externalCustomerID}
	var out PolarCustomerSession
	if err := c.post(ctx, "/v1/customer-sessions/", in, &out); err != nil {
		return nil, fmt.Errorf("polar create customer session: %w", err)
	}
	if out.CustomerPortalURL == "" {
		return nil, errors.New("polar create customer session: response missing customer_portal_url")
	}
	return &out, nil
}

func (c *PolarClient) post(ctx context.Context, path string, in, out any) error {
	if c.AccessToken == "" {
		return errors.New("POLAR_ACCESS_TOKEN is not configured")
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.APIBaseURL, "/")+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
