package app

import (
	"context"

	"carriers/internal/handlers/rest/carrier_delete_post"
	"carriers/internal/handlers/rest/carrier_get"
	"carriers/internal/handlers/rest/carrier_post"
	"carriers/internal/handlers/rest/carrier_put"
	"carriers/internal/handlers/rest/carriers_get"
	"carriers/internal/handlers/rest/ping_get"
	"carriers/internal/handlers/tasks/carrier_seed"
	"carriers/internal/handlers/tasks/system_metrics"
	"carriers/internal/pkg/config"
	carrierRepo "carriers/internal/repository/carrier"
	carrierService "carriers/internal/service/carrier"
	"carriers/pkg/background"
	"carriers/pkg/logger"
	"carriers/pkg/querier"
	"carriers/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Application struct {
	ServiceCarrier    ServiceCarrier
	Storage           Storage
	BackgroundWorkers *background.Worker
}

type ServiceCarrier interface {
	carriers_get.Service
	carrier_get.Service
	carrier_post.Service
	carrier_put.Service
	carrier_delete_post.Service
	carrier_seed.Service
}

type Storage interface {
	ping_get.Pinger
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideCarrierRepository(querier *querier.Querier) *carrierRepo.Repository {
	return carrierRepo.New(querier)
}

func provideServiceCarrier(
	repository carrierService.Repository,
	txManager carrierService.TxManager,
	publisher carrierService.EventPublisher,
) *carrierService.Carrier {
	return carrierService.New(repository, txManager, publisher)
}

func provideCarrierSeedTask(log logger.Logger, service ServiceCarrier) *carrier_seed.CarrierSeed {
	return carrier_seed.NewCarrierSeed(log, service)
}

func provideSystemMetricsTask() *system_metrics.Collector {
	return system_metrics.NewCollector(system_metrics.DefaultInterval)
}

// provideTaskList не регистрирует сид при SEED_ENABLED=false.
func provideTaskList(
	cfg *config.Config,
	carrierSeedTask *carrier_seed.CarrierSeed,
	systemMetricsTask *system_metrics.Collector,
) []background.Task {
	tasks := []background.Task{systemMetricsTask}
	if cfg.Storage.Seed {
		tasks = append(tasks, carrierSeedTask)
	}
	return tasks
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
