package rate_limiter

import "carriers/pkg/logger"

type Limiter interface {
	Allow() bool
}

// KeyedLimiter ведёт отдельный бюджет на каждый ключ.
type KeyedLimiter interface {
	AllowKey(key string) bool
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
