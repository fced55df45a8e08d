//go:build wireinject
// +build wireinject

package di

import (
	"github.com/nicgenovese/polymarket-signal-service/pkg/config"
	"github.com/nicgenovese/polymarket-signal-service/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Market source
		ProvideCache,
		ProvideMarketSource,

		// Pipeline
		ProvideScanner,
		ProvideSequence,
		ProvidePipeline,

		// Persistence
		ProvideSink,
		ProvideProcessor,

		// HTTP surface
		ProvideACPService,
		ProvideHandler,

		ProvideApp,
	)
	return nil, nil
}
