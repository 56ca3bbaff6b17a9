//go:build wireinject
// +build wireinject

package di

import (
	"FinScope/pkg/config"
	"FinScope/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,

		// Providers
		ProvideFMPClient,
		ProvideNewsClient,

		// Use cases
		ProvideProfileUseCase,
		ProvideSentimentUseCase,
		ProvideMoatUseCase,

		// HTTP
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
