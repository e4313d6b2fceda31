//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=carrier_rules_get_test
package carrier_rules_get

import (
	"carriers/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
