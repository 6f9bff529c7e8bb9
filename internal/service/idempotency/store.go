package idempotency

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

const defaultTTL = 24 * time.Hour

type record struct {
	orderID  int64
	storedAt time.Time
}

// Store — потокобезопасное in-memory хранилище idempotency-ключей.
// Запись живёт ttl с момента Set; просроченные записи не отдаются из Get
// и удаляются воркером очистки.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	ttl     time.Duration
	now     func() time.Time
}

// NewStore создаёт хранилище с TTL по умолчанию.
func NewStore() *Store {
	return NewStoreWithTTL(defaultTTL)
}

// NewStoreWithTTL создаёт хранилище с заданным временем жизни записей.
// ttl<=0 заменяется значением по умолчанию.
func NewStoreWithTTL(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		records: make(map[string]record),
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Get возвращает ID заказа, сохранённый под ключом. Просроченная запись
// считается отсутствующей.
func (s *Store) Get(key string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return 0, false
	}
	if s.now().Sub(rec.storedAt) >= s.ttl {
		return 0, false
	}
	return rec.orderID, true
}

// Set сохраняет соответствие ключа заказу, перезаписывая прежнее значение.
func (s *Store) Set(key string, orderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = record{orderID: orderID, storedAt: s.now()}
}

// Exists сообщает, есть ли живая запись под ключом.
func (s *Store) Exists(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// DeleteExpired удаляет до batchSize записей, сохранённых раньше before.
// Возвращает число удалённых записей.
func (s *Store) DeleteExpired(before time.Time, batchSize int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for key, rec := range s.records {
		if batchSize > 0 && deleted >= batchSize {
			break
		}
		if rec.storedAt.Add(s.ttl).Before(before) || rec.storedAt.Add(s.ttl).Equal(before) {
			delete(s.records, key)
			deleted++
		}
	}
	return deleted, nil
}

// Len возвращает текущее число записей, включая просроченные.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ domain.IdempotencyStore = (*Store)(nil)
