package token_bucket

import (
	"sync"
	"time"
)

/*
по сути алгоритм простой, реализовываем Allow метод который возвращает true/false,
то есть - мы либо принимаем запрос, либо отклоняем.
*/

type Limiter interface {
	Allow() bool
}

// KeyedLimiter ведёт отдельное ведро на каждый ключ (например, IP клиента).
type KeyedLimiter interface {
	AllowKey(key string) bool
}

type TokenBucket struct {
	capacity   int
	tokens     int
	refillRate float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens > 0 {
		t.tokens--
		return true
	}
	return false
}

// full сообщает, что ведро полностью восстановилось и его можно выбросить.
func (t *TokenBucket) full() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return t.tokens >= t.capacity
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	tokensToAdd := int(elapsed * t.refillRate)

	if tokensToAdd <= 0 {
		return
	}

	// полное ведро не копит время впрок
	if t.tokens+tokensToAdd >= t.capacity {
		t.tokens = t.capacity
		t.lastRefill = now
		return
	}

	// дробный остаток elapsed переносится на следующее пополнение
	t.tokens += tokensToAdd
	t.lastRefill = t.lastRefill.Add(time.Duration(float64(tokensToAdd) / t.refillRate * float64(time.Second)))
}

// Keyed хранит ведра по ключам. Полностью восстановившиеся ведра
// удаляются при очередной чистке, чтобы карта не росла бесконечно.
type Keyed struct {
	capacity   int
	refillRate float64
	sweepEvery int
	now        func() time.Time
	mu         sync.Mutex
	buckets    map[string]*TokenBucket
	sinceSweep int
}

const defaultSweepEvery = 1024

func NewKeyed(capacity int, refillRate float64) *Keyed {
	return newKeyed(capacity, refillRate, time.Now)
}

func newKeyed(capacity int, refillRate float64, now func() time.Time) *Keyed {
	return &Keyed{
		capacity:   capacity,
		refillRate: refillRate,
		sweepEvery: defaultSweepEvery,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
	}
}

func (k *Keyed) AllowKey(key string) bool {
	k.mu.Lock()
	k.sinceSweep++
	if k.sinceSweep >= k.sweepEvery {
		k.sweepLocked()
	}
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = newTokenBucket(k.capacity, k.refillRate, k.now)
		k.buckets[key] = bucket
	}
	k.mu.Unlock()

	return bucket.Allow()
}

// Len возвращает количество отслеживаемых ключей.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *Keyed) sweepLocked() {
	k.sinceSweep = 0
	for key, bucket := range k.buckets {
		if bucket.full() {
			delete(k.buckets, key)
		}
	}
}
