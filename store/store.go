package store

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/internal/shard"
)

// Store is an identity map: it holds at most one live entity per identifier.
type Store struct {
	id     string
	config Config
	logger *slog.Logger

	mu     sync.RWMutex
	shards []map[entity.ID]entity.Entity
	count  int
}

// New creates an empty Store.
func New(config Config, logger *slog.Logger) *Store {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		id:     uuid.NewString(),
		config: config,
	}
	s.logger = logger.With("store", s.id)
	s.shards = s.newShards()
	return s
}

// InstanceID returns the unique identifier of this Store instance.
func (s *Store) InstanceID() string {
	return s.id
}

// Config returns the validated configuration.
func (s *Store) Config() Config {
	return s.config
}

// Count returns the number of stored entities.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Add stores e unless it is null or its identifier is already present, in
// which case the first entity stays. Adding a nil entity panics.
func (s *Store) Add(e entity.Entity) {
	if entity.IsNil(e) {
		panic(ErrNilEntity)
	}
	_ = s.put(e)
}

// put inserts e and reports why it did not.
func (s *Store) put(e entity.Entity) error {
	if entity.IsNull(e) {
		return ErrNullEntity
	}
	id := e.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.bucket(id)
	if _, exists := bucket[id]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, entity.Key(e))
	}
	bucket[id] = e
	s.count++
	return nil
}

// Fetch returns the entity stored under id.
func (s *Store) Fetch(id entity.ID) (entity.Entity, bool) {
	if id.IsNull() {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.bucket(id)[id]
	return e, ok
}

// FetchAs returns the entity stored under id as a T. On a miss, or when the
// stored entity is not a T, it returns T's Null instance and false.
func FetchAs[T entity.Nullable[T]](s *Store, id entity.ID) (T, bool) {
	if s == nil {
		return entity.NullOf[T](), false
	}
	e, ok := s.Fetch(id)
	if !ok {
		return entity.NullOf[T](), false
	}
	v, ok := e.(T)
	if !ok {
		return entity.NullOf[T](), false
	}
	return v, true
}

// Remove deletes the entity stored under id.
func (s *Store) Remove(id entity.ID) bool {
	if id.IsNull() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.bucket(id)
	if _, ok := bucket[id]; !ok {
		return false
	}
	delete(bucket, id)
	s.count--
	return true
}

// RemoveEntity deletes the entity stored under e's identifier.
func (s *Store) RemoveEntity(e entity.Entity) bool {
	return !entity.IsNull(e) && s.Remove(e.ID())
}

// Contains reports whether an entity is stored under id.
func (s *Store) Contains(id entity.ID) bool {
	_, ok := s.Fetch(id)
	return ok
}

// ContainsEntity reports whether an entity is stored under e's identifier.
func (s *Store) ContainsEntity(e entity.Entity) bool {
	return !entity.IsNull(e) && s.Contains(e.ID())
}

// Clear removes all entities.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.count
	s.shards = s.newShards()
	s.count = 0
	s.logger.Debug("store cleared", "removed", n)
}

// IDs returns the stored identifiers in ascending order.
func (s *Store) IDs() []entity.ID {
	s.mu.RLock()
	ids := make([]entity.ID, 0, s.count)
	for _, bucket := range s.shards {
		for id := range bucket {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

func (s *Store) bucket(id entity.ID) map[entity.ID]entity.Entity {
	return s.shards[shard.Index(id.Int32(), len(s.shards))]
}

func (s *Store) newShards() []map[entity.ID]entity.Entity {
	shards := make([]map[entity.ID]entity.Entity, s.config.NumShards)
	for i := range shards {
		shards[i] = make(map[entity.ID]entity.Entity, s.config.InitialCapacity)
	}
	return shards
}
