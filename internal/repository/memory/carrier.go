// Package memory хранит листинги в памяти процесса.
// Используется при STORAGE_DRIVER=memory и в сквозных тестах API.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"carriers/internal/entities"
	"carriers/internal/service/carrier"
	"carriers/internal/validation"
)

type Repository struct {
	mu       sync.RWMutex
	carriers map[int64]entities.Carrier
	lastID   int64
	now      func() time.Time
}

func New() *Repository {
	return &Repository{
		carriers: make(map[int64]entities.Carrier),
		now:      time.Now,
	}
}

func (r *Repository) Create(ctx context.Context, carrierModifyEntity entities.CarrierModify) (*entities.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPINLength(carrierModifyEntity.PIN); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// id никогда не переиспользуется, даже после удаления
	r.lastID++
	created := entities.Carrier{
		ID:          r.lastID,
		Phone:       deref(carrierModifyEntity.Phone),
		Description: deref(carrierModifyEntity.Description),
		PIN:         deref(carrierModifyEntity.PIN),
		CreatedAt:   r.now().UTC(),
	}
	r.carriers[created.ID] = created

	return &created, nil
}

func (r *Repository) Update(ctx context.Context, id int64, carrierModifyEntity entities.CarrierModify) (*entities.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPINLength(carrierModifyEntity.PIN); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.carriers[id]
	if !ok {
		return nil, carrier.ErrCarrierNotFound
	}

	// опционные поля
	if carrierModifyEntity.Phone != nil {
		current.Phone = *carrierModifyEntity.Phone
	}
	if carrierModifyEntity.Description != nil {
		current.Description = *carrierModifyEntity.Description
	}
	if carrierModifyEntity.PIN != nil {
		current.PIN = *carrierModifyEntity.PIN
	}
	r.carriers[id] = current

	return &current, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carriers[id]; !ok {
		return carrier.ErrCarrierNotFound
	}
	delete(r.carriers, id)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	found, ok := r.carriers[id]
	if !ok {
		return nil, carrier.ErrCarrierNotFound
	}
	return &found, nil
}

// GetByIDForUpdate не блокирует сам: сериализацию обеспечивает TxManager.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Carrier, error) {
	return r.GetByID(ctx, id)
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	res := make([]entities.Carrier, 0, len(r.carriers))
	for _, c := range r.carriers {
		res = append(res, c)
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.carriers)), nil
}

func (r *Repository) LockSeed(context.Context) error {
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// checkPINLength повторяет CHECK-ограничение таблицы carriers.
func checkPINLength(pin *string) error {
	if pin != nil && utf8.RuneCountInString(*pin) != validation.PINLength {
		return &validation.Error{
			Field:   validation.FieldPIN,
			Message: "PIN must be exactly 4 characters",
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
