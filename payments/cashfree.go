package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"shoply/models"
)

const (
	sandboxURL    = "https://sandbox.cashfree.com/pg/orders"
	productionURL = "https://api.cashfree.com/api/v2/order/create"
	apiVersion    = "2023-08-01"
)

var (
	// ErrUpstream covers transport failures and non-2xx gateway responses.
	ErrUpstream = errors.New("payment gateway error")
	// ErrGatewayTimeout is returned when the gateway call exceeds its deadline.
	ErrGatewayTimeout = errors.New("payment gateway timeout")
)

// Client talks to the Cashfree order-creation endpoint. Credentials travel
// in headers; sandbox vs production is a construction-time choice.
type Client struct {
	appID      string
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(appID, secretKey string, prod bool, timeout time.Duration) *Client {
	baseURL := sandboxURL
	if prod {
		baseURL = productionURL
	}
	return &Client{
		appID:     appID,
		secretKey: secretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder posts the order to the gateway and returns the raw response
// body, which is passed through to the API caller untouched.
func (c *Client) CreateOrder(ctx context.Context, order models.CashfreeOrderRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, fmt.Errorf("%w: %v", ErrGatewayTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, body)
	}

	return body, nil
}
