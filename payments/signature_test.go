package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignAndVerify(t *testing.T) {
	secret := []byte("webhook-secret")
	body := []byte(`{"orderId":"ord1","txStatus":"SUCCESS"}`)

	sig := Sign(secret, body)
	assert.NotEmpty(t, sig)
	assert.True(t, VerifySignature(secret, body, sig))
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	secret := []byte("webhook-secret")
	body := []byte(`{"orderId":"ord1","txStatus":"SUCCESS"}`)
	sig := Sign(secret, body)

	tampered := []byte(`{"orderId":"ord1","txStatus":"FAILED"}`)
	assert.False(t, VerifySignature(secret, tampered, sig))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"orderId":"ord1"}`)
	sig := Sign([]byte("secret-a"), body)

	assert.False(t, VerifySignature([]byte("secret-b"), body, sig))
	assert.False(t, VerifySignature([]byte("secret-a"), body, ""))
}
