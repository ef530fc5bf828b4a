//go:build wireinject
// +build wireinject

package di

import (
	"AgriPulse/pkg/config"
	"AgriPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideClock,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvidePriceStore,
		ProvideAlertNotifier,
		ProvideFeedSource,
		ProvideFeedCache,

		// Use cases
		ProvideObservationProcessor,
		ProvideKafkaPricesHandler,
		ProvideFeedCollector,
		ProvideTrendEngine,
		ProvidePredictionEngine,
		ProvideComparisonEngine,
		ProvideAlertService,
		ProvideFeedService,

		// HTTP surface and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
