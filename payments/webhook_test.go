package payments

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoply/orders"

	"github.com/stretchr/testify/assert"
)

// These cover the request-authentication paths, which reject before any
// order lookup happens.

func webhookService(secret string) *Service {
	return NewService(nil, nil, nil, nil, nil, []byte(secret))
}

func TestSettlementStatusMapping(t *testing.T) {
	assert.Equal(t, orders.StatusPaid, settlementStatus("SUCCESS"))

	// anything that is not the literal SUCCESS verdict settles as FAILED
	for _, tx := range []string{"FAILURE", "CANCELLED", "PENDING", "success", ""} {
		assert.Equalf(t, orders.StatusFailed, settlementStatus(tx), "txStatus %q", tx)
	}
}

func TestHandleWebhookRejectsMissingSignature(t *testing.T) {
	svc := webhookService("secret")

	body := []byte(`{"orderId":"ord1","txStatus":"SUCCESS"}`)
	req := httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(body))
	w := httptest.NewRecorder()

	svc.HandleWebhook(w, req, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc := webhookService("secret")

	body := []byte(`{"orderId":"ord1","txStatus":"SUCCESS"}`)
	req := httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(body))
	req.Header.Set(SignatureHeader, Sign([]byte("other-secret"), body))
	w := httptest.NewRecorder()

	svc.HandleWebhook(w, req, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleWebhookRejectsBadPayload(t *testing.T) {
	svc := webhookService("secret")

	t.Run("invalid json", func(t *testing.T) {
		body := []byte(`{not json`)
		req := httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, Sign([]byte("secret"), body))
		w := httptest.NewRecorder()

		svc.HandleWebhook(w, req, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing orderId", func(t *testing.T) {
		body := []byte(`{"txStatus":"SUCCESS"}`)
		req := httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, Sign([]byte("secret"), body))
		w := httptest.NewRecorder()

		svc.HandleWebhook(w, req, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
