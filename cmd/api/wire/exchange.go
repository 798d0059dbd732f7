//go:build wireinject
// +build wireinject

package wire

import (
	"essensys-server/internal/exchange/httpapi"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/async"

	"github.com/google/wire"
)

func InitializeApplication(broker async.InternalBroker) (*Application, error) {
	wire.Build(
		provideAppConfig,
		ExchangeStoreSet,
		ExchangeServiceSet,
		httpapi.NewLegacyController,
		httpapi.NewAdminController,
		usecases.NewActionEventWorker,
		provideConnectionSweeper,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
