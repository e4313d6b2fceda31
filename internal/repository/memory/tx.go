package memory

import (
	"context"
	"sync"
)

// TxManager выполняет транзакции по одной. Отката нет: ошибка в середине
// оставляет уже сделанные изменения, сервис вызывает запись последней.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
