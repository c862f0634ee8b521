package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/scenario"
	"github.com/aretw0/stepwise/pkg/trace"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a crashed replica can hold a distributed lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// View is what a client sees of a session after an operation.
type View struct {
	Session *domain.Session `json:"session"`

	// Snapshot is the current snapshot, nil before the first Advance.
	Snapshot *domain.Snapshot[any] `json:"snapshot,omitempty"`

	Total    int  `json:"total"`
	Finished bool `json:"finished"`

	// Moved reports whether the operation changed the position.
	Moved bool `json:"moved"`
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	newID   func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks (default DefaultLockTTL).
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

// WithLifecycleHooks registers hooks; OnStep fires after every cursor movement.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithIDGenerator replaces the random UUID session IDs.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new session Manager with the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Start validates and runs the scenario once, then stores a new session
// positioned before the first snapshot.
func (m *Manager) Start(ctx context.Context, sc domain.Scenario) (*View, error) {
	tr, err := scenario.Run(sc)
	if err != nil {
		return nil, err
	}

	sess := domain.NewSession(m.newID(), sc)
	err = m.WithLock(ctx, sess.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, sess.ID, sess)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	m.logger.Info("session started", "session_id", sess.ID, "algorithm", sc.Algorithm, "snapshots", tr.Len())
	return newView(sess, trace.NewStepper(tr), false), nil
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.store.Load(ctx, sessionID)
		return err
	})
	return sess, err
}

// Current returns the session and the snapshot under its cursor.
func (m *Manager) Current(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, st, err := m.resume(ctx, sessionID)
		if err != nil {
			return err
		}
		view = newView(sess, st, false)
		return nil
	})
	return view, err
}

// Advance moves the cursor one snapshot forward. At the end of the trace the
// session is left unchanged and the view reports Moved == false.
func (m *Manager) Advance(ctx context.Context, sessionID string) (*View, error) {
	return m.move(ctx, sessionID, func(st *trace.Stepper[any]) bool {
		_, ok := st.Advance()
		return ok
	})
}

// Reset moves the cursor back before the first snapshot.
func (m *Manager) Reset(ctx context.Context, sessionID string) (*View, error) {
	return m.move(ctx, sessionID, func(st *trace.Stepper[any]) bool {
		moved := st.Position() != -1
		st.Reset()
		return moved
	})
}

func (m *Manager) move(ctx context.Context, sessionID string, step func(*trace.Stepper[any]) bool) (*View, error) {
	var view *View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, st, err := m.resume(ctx, sessionID)
		if err != nil {
			return err
		}

		moved := step(st)
		if moved {
			sess.Position = st.Position()
			sess.UpdatedAt = time.Now().UTC()
			if err := m.store.Save(ctx, sessionID, sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
		}
		view = newView(sess, st, moved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if view.Moved && m.hooks.OnStep != nil {
		evt := &domain.StepEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
			SessionID: sessionID,
			Position:  view.Session.Position,
			Finished:  view.Finished,
		}
		if view.Snapshot != nil {
			evt.Tag = view.Snapshot.Tag
		}
		m.hooks.OnStep(ctx, evt)
	}
	return view, nil
}

// resume loads the session, rebuilds its trace and restores the cursor.
func (m *Manager) resume(ctx context.Context, sessionID string) (*domain.Session, *trace.Stepper[any], error) {
	sess, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := scenario.Run(sess.Scenario)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to rebuild trace for session %s: %w", sessionID, err)
	}
	st, err := trace.Resume(tr, sess.Position)
	if err != nil {
		return nil, nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sess, st, nil
}

// Delete removes the session. Unknown sessions return domain.ErrSessionNotFound.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, sessionID); err != nil {
			return err
		}
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// IsNotFound reports whether err means the session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound)
}

func newView(sess *domain.Session, st *trace.Stepper[any], moved bool) *View {
	v := &View{
		Session:  sess,
		Total:    st.Len(),
		Finished: st.IsFinished(),
		Moved:    moved,
	}
	if snap, ok := st.Current(); ok {
		v.Snapshot = &snap
	}
	return v
}
