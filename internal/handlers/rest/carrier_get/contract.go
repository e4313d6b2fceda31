//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=carrier_get_test
package carrier_get

import (
	"context"

	"carriers/internal/entities"
	"carriers/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetCarrier(ctx context.Context, id int64) (*entities.Carrier, error)
}
