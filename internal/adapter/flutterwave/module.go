package flutterwave

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// Module exposes the transaction verifier to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newClient(p clientParams) (usecase.TransactionVerifier, error) {
	return NewHTTPClient(p.Config.Flutterwave.BaseURL, p.Config.Flutterwave.SecretKey, p.Logger.Named("flutterwave"))
}
