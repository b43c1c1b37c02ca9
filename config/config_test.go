package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("CASHFREE_PROD", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "ecommerce", cfg.MongoDB)
	assert.False(t, cfg.CashfreeProd)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DB", "shopdb")
	t.Setenv("CASHFREE_PROD", "true")

	cfg := Load()

	// bare port numbers get the leading colon added
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "shopdb", cfg.MongoDB)
	assert.True(t, cfg.CashfreeProd)
}
