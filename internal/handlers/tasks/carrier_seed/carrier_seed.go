package carrier_seed

import (
	"context"
	"time"

	"carriers/pkg/logger"
)

const seedTimeout = 30 * time.Second

type Service interface {
	SeedCarriers(ctx context.Context) (int, error)
}

// CarrierSeed заполняет пустое хранилище демо-листингами один раз при старте.
type CarrierSeed struct {
	log     logger.Logger
	service Service
}

func NewCarrierSeed(log logger.Logger, service Service) *CarrierSeed {
	return &CarrierSeed{
		log:     log,
		service: service,
	}
}

// TTL равен нулю: задача одноразовая.
func (c *CarrierSeed) TTL() time.Duration {
	return 0
}

func (c *CarrierSeed) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	inserted, err := c.service.SeedCarriers(ctxWithTimeout)
	if err != nil {
		return err
	}

	if inserted > 0 {
		c.log.With(
			logger.NewField("inserted", inserted),
		).Info("carriers seeded")
	} else {
		c.log.Info("carriers already present, seed skipped")
	}
	return nil
}

func (c *CarrierSeed) Info() string {
	return "carrier seed"
}
