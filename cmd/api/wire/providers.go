package wire

import (
	"essensys-server/cmd/config"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/httpapi"
	"essensys-server/internal/exchange/persistence"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/async"
	"essensys-server/internal/infra/cache"
	"essensys-server/internal/infra/httpserver"
	"essensys-server/internal/infra/sql"
	"fmt"
	"log/slog"

	"github.com/google/wire"
)

// Application holds the components sharing one action queue and one
// exchange table.
type Application struct {
	Legacy       *httpapi.LegacyController
	Admin        *httpapi.AdminController
	ActionEvents *usecases.ActionEventWorker
	Sweeper      *usecases.ConnectionSweeper
}

func (a *Application) Controllers() []httpserver.Controller {
	return []httpserver.Controller{a.Legacy, a.Admin}
}

func (a *Application) Workers() []async.Worker {
	return []async.Worker{a.ActionEvents, a.Sweeper}
}

var ExchangeStoreSet = wire.NewSet(
	provideActionQueue,
	persistence.NewMemoryExchangeTable,
	wire.Bind(new(usecases.ExchangeTable), new(*persistence.MemoryExchangeTable)),
	persistence.NewMemoryClientRegistry,
	wire.Bind(new(usecases.ClientRegistry), new(*persistence.MemoryClientRegistry)),
)

var ExchangeServiceSet = wire.NewSet(
	usecases.NewActionService,
	wire.Bind(new(usecases.ActionService), new(*usecases.SimpleActionService)),
	usecases.NewStatusService,
	wire.Bind(new(usecases.StatusService), new(*usecases.SimpleStatusService)),
	provideRequestedIndices,
	usecases.NewServerInfoService,
	wire.Bind(new(usecases.ServerInfoService), new(*usecases.SimpleServerInfoService)),
)

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return sql.NewPostgreORM(cfg.Database.DSN)
	case config.DriverSqlite:
		return sql.NewSqliteORM(cfg.Database.Path, cfg.Database.Timeout)
	default:
		return nil, fmt.Errorf("no database for driver %q", cfg.Database.Driver)
	}
}

func provideActionQueue(cfg config.AppConfig) (usecases.ActionQueue, error) {
	var queue usecases.ActionQueue
	if cfg.Database.Driver == config.DriverMemory {
		slog.Info("using in-memory action queue, pending actions are lost on restart")
		queue = persistence.NewMemoryActionQueue()
	} else {
		orm, err := provideDatabase(cfg)
		if err != nil {
			return nil, err
		}
		queue, err = persistence.NewORMActionQueue(orm)
		if err != nil {
			return nil, err
		}
	}

	store, err := provideCache(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return queue, nil
	}
	return persistence.NewCachedActionQueue(queue, store, cfg.Cache.TTL), nil
}

func provideCache(cfg config.AppConfig) (cache.Cache, error) {
	switch cfg.Cache.Driver {
	case config.CacheRedis:
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:        cfg.Cache.Redis.Addr,
			Password:    cfg.Cache.Redis.Password,
			DB:          cfg.Cache.Redis.DB,
			Prefix:      cfg.Cache.Redis.Prefix,
			DialTimeout: cfg.Cache.Redis.DialTimeout,
		})
	case config.CacheMemory:
		return cache.NewRistrettoCache(nil)
	default:
		return nil, nil
	}
}

func provideRequestedIndices(cfg config.AppConfig) []domain.Index {
	indices := make([]domain.Index, len(cfg.Exchange.RequestedIndices))
	for i, index := range cfg.Exchange.RequestedIndices {
		indices[i] = domain.Index(index)
	}
	return indices
}

func provideConnectionSweeper(cfg config.AppConfig, registry usecases.ClientRegistry) (*usecases.ConnectionSweeper, error) {
	return usecases.NewConnectionSweeper(cfg.Exchange.SweepSchedule, cfg.Exchange.StaleAfter, registry)
}
