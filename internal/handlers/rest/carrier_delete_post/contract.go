//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=carrier_delete_post_test
package carrier_delete_post

import (
	"context"

	"carriers/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	DeleteCarrier(ctx context.Context, id int64, pin string) error
}
