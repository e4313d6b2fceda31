package carrier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carriers/internal/entities"
	"carriers/internal/validation"
)

type Carrier struct {
	repository Repository
	txManager  TxManager
	publisher  EventPublisher
	now        func() time.Time
}

func New(repository Repository, txManager TxManager, publisher EventPublisher) *Carrier {
	return &Carrier{
		repository: repository,
		txManager:  txManager,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *Carrier) CreateCarrier(ctx context.Context, carrierModify entities.CarrierModify) (*entities.Carrier, error) {
	if err := validation.ValidateCreate(carrierModify); err != nil {
		return nil, err
	}

	created, err := s.repository.Create(ctx, carrierModify)
	observe(opCreate, err)
	if err != nil {
		return nil, fmt.Errorf("create carrier: %w", err)
	}

	s.publish(ctx, entities.CarrierCreated, created.ID, created)
	return created, nil
}

func (s *Carrier) GetCarrier(ctx context.Context, id int64) (*entities.Carrier, error) {
	if id <= 0 {
		return nil, ErrInvalidCarrierID
	}

	carrier, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get carrier: %w", err)
	}

	return carrier, nil
}

func (s *Carrier) GetCarriers(ctx context.Context) ([]entities.Carrier, error) {
	carriers, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get carriers: %w", err)
	}

	return carriers, nil
}

// UpdateCarrier применяет только переданные поля. pin служит для авторизации,
// новый PIN (если нужен) передаётся в carrierModify.PIN.
func (s *Carrier) UpdateCarrier(
	ctx context.Context,
	id int64,
	pin string,
	carrierModify entities.CarrierModify,
) (*entities.Carrier, error) {
	if id <= 0 {
		return nil, ErrInvalidCarrierID
	}
	if err := validation.ValidateUpdate(pin, carrierModify); err != nil {
		return nil, err
	}

	var updated *entities.Carrier
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := authorize(current, pin); err != nil {
			return err
		}

		updated, err = s.repository.Update(ctx, id, carrierModify)
		return err
	})
	s.observeGuarded(opUpdate, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update carrier: %w", err)
	}

	s.publish(ctx, entities.CarrierUpdated, updated.ID, updated)
	return updated, nil
}

func (s *Carrier) DeleteCarrier(ctx context.Context, id int64, pin string) error {
	if id <= 0 {
		return ErrInvalidCarrierID
	}
	if err := validation.ValidateDelete(pin); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := authorize(current, pin); err != nil {
			return err
		}

		return s.repository.Delete(ctx, id)
	})
	s.observeGuarded(opDelete, err)
	if err != nil {
		return fmt.Errorf("failed to delete carrier: %w", err)
	}

	s.publish(ctx, entities.CarrierDeleted, id, nil)
	return nil
}

// SeedCarriers вставляет SeedData, только если хранилище пустое.
// Возвращает количество вставленных записей.
func (s *Carrier) SeedCarriers(ctx context.Context) (int, error) {
	inserted := 0
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		inserted = 0

		if err := s.repository.LockSeed(ctx); err != nil {
			return err
		}

		count, err := s.repository.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, seed := range SeedData() {
			if _, err := s.repository.Create(ctx, seed); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	observe(opSeed, err)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSeedFailed, err)
	}

	return inserted, nil
}

func (s *Carrier) observeGuarded(operation string, err error) {
	if errors.Is(err, ErrInvalidPIN) {
		PINRejectionsTotal.WithLabelValues(operation).Inc()
	}
	observe(operation, err)
}

func (s *Carrier) publish(ctx context.Context, eventType entities.CarrierEventType, id int64, carrier *entities.Carrier) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, entities.CarrierEvent{
		Type:       eventType,
		CarrierID:  id,
		Carrier:    carrier,
		OccurredAt: s.now(),
	})
}
