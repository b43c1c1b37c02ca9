package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shoply/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() models.CashfreeOrderRequest {
	return models.CashfreeOrderRequest{
		CustomerDetails: models.CustomerDetails{
			CustomerID:    "u1",
			CustomerEmail: "a@b.com",
			CustomerPhone: "9999999999",
			CustomerName:  "A B",
		},
		OrderID:       "ord1",
		OrderAmount:   250,
		OrderCurrency: "INR",
	}
}

func TestCreateOrderSendsCredentialsAndBody(t *testing.T) {
	var gotHeaders http.Header
	var gotBody models.CashfreeOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"order_status":"ACTIVE"}`))
	}))
	defer srv.Close()

	client := NewClient("app-id", "secret", false, 5*time.Second)
	client.baseURL = srv.URL

	body, err := client.CreateOrder(context.Background(), testRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_status":"ACTIVE"}`, string(body))

	assert.Equal(t, "app-id", gotHeaders.Get("x-client-id"))
	assert.Equal(t, "secret", gotHeaders.Get("x-client-secret"))
	assert.Equal(t, "2023-08-01", gotHeaders.Get("x-api-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("content-type"))

	assert.Equal(t, "ord1", gotBody.OrderID)
	assert.Equal(t, 250.0, gotBody.OrderAmount)
	assert.Equal(t, "INR", gotBody.OrderCurrency)
	assert.Equal(t, "a@b.com", gotBody.CustomerDetails.CustomerEmail)
}

func TestCreateOrderNon2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient("app-id", "bad-secret", false, 5*time.Second)
	client.baseURL = srv.URL

	_, err := client.CreateOrder(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCreateOrderTimeoutIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient("app-id", "secret", false, 20*time.Millisecond)
	client.baseURL = srv.URL

	_, err := client.CreateOrder(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrGatewayTimeout)
}

func TestNewClientSelectsBaseURL(t *testing.T) {
	assert.Equal(t, sandboxURL, NewClient("a", "s", false, time.Second).baseURL)
	assert.Equal(t, productionURL, NewClient("a", "s", true, time.Second).baseURL)
}
