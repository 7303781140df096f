package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolarClient(t *testing.T, handler http.HandlerFunc) *PolarClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewPolarClient("polar_pat_test", "sandbox")
	c.APIBaseURL = srv.URL
	return c
}

func TestPolarAPIBaseURL(t *testing.T) {
	assert.Equal(t, PolarSandboxAPIBaseURL, PolarAPIBaseURL("sandbox"))
	assert.Equal(t, PolarSandboxAPIBaseURL, PolarAPIBaseURL(""))
	assert.Equal(t, PolarProductionAPIBaseURL, PolarAPIBaseURL("Production"))
}

func TestPolarCreateCustomer(t *testing.T) {
	var got map[string]string
	c := newTestPolarClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/customers/", r.URL.Path)
		assert.Equal(t, "Bearer polar_pat_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"cus_1","email":"a@example.com","name":"alice","external_id":"ext-1"}`))
	})

	customer, err := c.CreateCustomer(context.Background(), "a@example.com", "alice", "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", customer.ID)
	assert.Equal(t, "ext-1", got["external_id"])
	assert.Equal(t, "a@example.com", got["email"])
}

func TestPolarCreateCheckout(t *testing.T) {
	var got struct {
		Products           []string `json:"products"`
		ExternalCustomerID string   `json:"external_customer_id"`
		SuccessURL         string   `json:"success_url"`
	}
	c := newTestPolarClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkouts/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"chk_1","url":"https://sandbox.polar.sh/checkout/chk_1"}`))
	})

	checkout, err := c.CreateCheckout(context.Background(), []string{"p1", "p2"}, "ext-1", "https://studio.test/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.polar.sh/checkout/chk_1", checkout.URL)
	assert.Equal(t, []string{"p1", "p2"}, got.Products)
	assert.Equal(t, "ext-1", got.ExternalCustomerID)
	assert.Equal(t, "https://studio.test/dashboard", got.SuccessURL)
}

func TestPolarCreateCheckoutValidation(t *testing.T) {
	c := NewPolarClient("token", "sandbox")

	_, err := c.CreateCheckout(context.Background(), nil, "ext-1", "")
	assert.Error(t, err)

	_, err = c.CreateCheckout(context.Background(), []string{"p1"}, "", "")
	assert.ErrorIs(t, err, ErrMissingCustomerReference)
}

func TestPolarCustomerSession(t *testing.T) {
	c := newTestPolarClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/customer-sessions/", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"tok","customer_portal_url":"https://sandbox.polar.sh/portal?token=tok"}`))
	})

	session, err := c.CreateCustomerSession(context.Background(), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.polar.sh/portal?token=tok", session.CustomerPortalURL)
}

func TestPolarErrorStatus(t *testing.T) {
	c := newTestPolarClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid token"}`))
	})

	_, err := c.CreateCustomer(context.Background(), "a@example.com", "alice", "ext-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestPolarMissingToken(t *testing.T) {
	c := NewPolarClient("", "sandbox")
	_, err := c.CreateCustomer(context.Background(), "a@example.com", "alice", "ext-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLAR_ACCESS_TOKEN")
}
