// Package cache хранит готовые отчёты в памяти процесса, чтобы повторная загрузка
// той же выгрузки с теми же параметрами не пересчитывалась.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"telegram-chat-stats/internal/domain"
)

// DefaultMaxEntries — сколько отчётов хранится одновременно.
const DefaultMaxEntries = 32

type entry struct {
	report    *domain.Report
	expiresAt time.Time
}

// CacheStore — потокобезопасный кеш отчётов с TTL и ограничением размера.
// При переполнении вытесняется запись, срок которой истекает раньше всех.
type CacheStore struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// Option настраивает CacheStore.
type Option func(*CacheStore)

// WithMaxEntries ограничивает число хранимых отчётов. n <= 0 означает DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(cs *CacheStore) {
		if n > 0 {
			cs.maxEntries = n
		}
	}
}

// NewCacheStore создает новый экземпляр CacheStore
func NewCacheStore(opts ...Option) *CacheStore {
	cs := &CacheStore{
		entries:    make(map[string]entry),
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// Key строит ключ кеша по содержимому выгрузки и отпечатку параметров отчёта.
func Key(data []byte, fingerprint string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// Get возвращает непросроченный отчёт по ключу.
func (cs *CacheStore) Get(key string) (*domain.Report, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	e, ok := cs.entries[key]
	if !ok || !cs.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.report, true
}

// Put сохраняет отчёт на ttl.
func (cs *CacheStore) Put(key string, report *domain.Report, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, exists := cs.entries[key]; !exists && len(cs.entries) >= cs.maxEntries {
		cs.evictLocked()
	}
	cs.entries[key] = entry{report: report, expiresAt: cs.now().Add(ttl)}
}

// evictLocked удаляет просроченные записи, а если таких нет - ближайшую к истечению.
func (cs *CacheStore) evictLocked() {
	now := cs.now()
	var (
		victim  string
		soonest time.Time
	)
	for key, e := range cs.entries {
		if !now.Before(e.expiresAt) {
			delete(cs.entries, key)
			continue
		}
		if victim == "" || e.expiresAt.Before(soonest) {
			victim, soonest = key, e.expiresAt
		}
	}
	if len(cs.entries) >= cs.maxEntries && victim != "" {
		delete(cs.entries, victim)
	}
}

// Len возвращает количество записей, включая ещё не удалённые просроченные.
func (cs *CacheStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.entries)
}

// CleanupExpired удаляет просроченные записи.
func (cs *CacheStore) CleanupExpired() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	for key, e := range cs.entries {
		if !now.Before(e.expiresAt) {
			delete(cs.entries, key)
		}
	}
}

// StartCleanupTicker периодически вызывает CleanupExpired, пока ctx не отменён.
func (cs *CacheStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.CleanupExpired()
			}
		}
	}()
}
