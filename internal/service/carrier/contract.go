//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=carrier_test
package carrier

import (
	"context"

	"carriers/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, carrierModifyEntity entities.CarrierModify) (*entities.Carrier, error)
	GetByID(ctx context.Context, id int64) (*entities.Carrier, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Carrier, error)
	GetAll(ctx context.Context) ([]entities.Carrier, error)
	Update(ctx context.Context, id int64, carrierModifyEntity entities.CarrierModify) (*entities.Carrier, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	LockSeed(ctx context.Context) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher получает события уже после фиксации изменений.
// Ошибки доставки остаются на стороне публикатора и не влияют на ответ.
type EventPublisher interface {
	Publish(ctx context.Context, event entities.CarrierEvent)
}
