package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/deeshop/internal/adapter/flutterwave"
	"github.com/polkiloo/deeshop/internal/adapter/mailer"
	"github.com/polkiloo/deeshop/internal/adapter/stripe"
	"github.com/polkiloo/deeshop/internal/app"
	"github.com/polkiloo/deeshop/internal/config"
	"github.com/polkiloo/deeshop/internal/logger"
	"github.com/polkiloo/deeshop/internal/pkg/auth"
	"github.com/polkiloo/deeshop/internal/server/http/router"
	"github.com/polkiloo/deeshop/internal/storage/postgres"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// Core wires configuration, logging, storage and use cases. It serves
// maintenance commands that need no transport.
func Core(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// Module wires the complete service: Core plus payment and mail adapters,
// the HTTP router and the runtime lifecycle.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		Core(),
		stripe.Module,
		flutterwave.Module,
		mailer.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
