package container

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/animgraph/internal/logging"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed holder can keep a distributed lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates container access, ensuring passes over one container
// never interleave. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SlotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	now     func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers publish and removal callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithClock replaces time.Now for slot timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.SlotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying slot store.
func (m *Manager) Store() ports.SlotStore {
	return m.store
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// WithLock runs fn with exclusive access to the named container.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context, *Container) error) error {
	if name == "" {
		return fmt.Errorf("container name cannot be empty")
	}

	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			// The pass context may already be canceled; release regardless.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"container", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx, m.open(name))
}

func (m *Manager) open(name string) *Container {
	return &Container{
		name:   name,
		store:  m.store,
		logger: m.logger.With("container", name),
		hooks:  m.hooks,
		now:    m.now,
	}
}

// Publish stores content under key with the container locked.
func (m *Manager) Publish(ctx context.Context, name, key string, content []byte) (*domain.Slot, error) {
	var slot *domain.Slot
	err := m.WithLock(ctx, name, func(ctx context.Context, c *Container) error {
		var err error
		slot, err = c.Publish(ctx, key, content)
		return err
	})
	return slot, err
}

// Reset clears the container with it locked.
func (m *Manager) Reset(ctx context.Context, name string) (int, error) {
	var removed int
	err := m.WithLock(ctx, name, func(ctx context.Context, c *Container) error {
		var err error
		removed, err = c.Reset(ctx)
		return err
	})
	return removed, err
}

// Lookup reads one slot. Reads take no lock; stores replace slots atomically.
func (m *Manager) Lookup(ctx context.Context, name, key string) (*domain.Slot, error) {
	return m.open(name).Lookup(ctx, key)
}

// Keys lists the slot keys of a container, root marker included.
func (m *Manager) Keys(ctx context.Context, name string) ([]string, error) {
	return m.open(name).Keys(ctx)
}
