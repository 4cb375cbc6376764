package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
)

func TestNewProviderUsesConfig(t *testing.T) {
	cfg := &config.Config{Stripe: config.StripeConfig{SecretKey: "sk_test", Currency: "gbp"}}
	provider, err := newProvider(providerParams{Config: cfg, Logger: zap.NewNop()})
	require.NoError(t, err)
	_, ok := provider.(*Client)
	assert.True(t, ok)
}

func TestNewProviderRejectsMissingKey(t *testing.T) {
	_, err := newProvider(providerParams{Config: &config.Config{}, Logger: zap.NewNop()})
	assert.Error(t, err)
}
