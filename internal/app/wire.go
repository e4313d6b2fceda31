//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"carriers/internal/pkg/config"
	carrierRepo "carriers/internal/repository/carrier"
	memoryRepo "carriers/internal/repository/memory"
	carrierService "carriers/internal/service/carrier"

	"carriers/pkg/logger"
	"carriers/pkg/querier"
	"carriers/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializePostgresApplication собирает сервис поверх PostgreSQL (STORAGE_DRIVER=postgres).
func InitializePostgresApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	publisher carrierService.EventPublisher,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideCarrierRepository,

		provideServiceCarrier,

		provideCarrierSeedTask,
		provideSystemMetricsTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceCarrier), new(*carrierService.Carrier)),
		wire.Bind(new(Storage), new(*querier.Querier)),
		wire.Bind(new(carrierService.Repository), new(*carrierRepo.Repository)),
		wire.Bind(new(carrierService.TxManager), new(*tx.Manager)),
	)
	return &Application{}, nil
}

// InitializeMemoryApplication собирает сервис поверх хранилища в памяти (STORAGE_DRIVER=memory).
func InitializeMemoryApplication(
	ctx context.Context,
	log logger.Logger,
	publisher carrierService.EventPublisher,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		memoryRepo.New,
		memoryRepo.NewTxManager,

		provideServiceCarrier,

		provideCarrierSeedTask,
		provideSystemMetricsTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceCarrier), new(*carrierService.Carrier)),
		wire.Bind(new(Storage), new(*memoryRepo.Repository)),
		wire.Bind(new(carrierService.Repository), new(*memoryRepo.Repository)),
		wire.Bind(new(carrierService.TxManager), new(*memoryRepo.TxManager)),
	)
	return &Application{}, nil
}
