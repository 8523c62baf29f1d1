//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"onlyone/internal"
	"onlyone/internal/controllers"
	"onlyone/internal/providers"
	"onlyone/internal/services"
	"onlyone/internal/store"
	"onlyone/internal/structures"
	"onlyone/internal/syncer"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRandProvider,

		store.NewZstdCompressor,
		store.NewSharedStore,
		syncer.NewSynchronizer,
		ProvideChangeNotifier,

		services.NewQuestionService,
		services.NewAnswerService,

		controllers.NewQuestionController,
		controllers.NewAnswerController,
		controllers.NewSyncController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
