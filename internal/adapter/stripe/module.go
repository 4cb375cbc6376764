package stripe

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// Module exposes the card payment provider to the fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newProvider(p providerParams) (usecase.CardPaymentProvider, error) {
	return NewClient(p.Config.Stripe.SecretKey, p.Config.Stripe.APIURL, p.Logger.Named("stripe"))
}
