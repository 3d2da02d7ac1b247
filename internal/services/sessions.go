package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/browse"
)

// SessionRegistry tracks live browse sessions by ID and evicts the ones that
// have gone quiet. Hidden and selection state die with the session; only the
// roster is persisted.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	ttl       time.Duration
	sweep     string
	cron      *cron.Cron
	logger    *logrus.Logger
	isRunning bool
}

type sessionEntry struct {
	session  *browse.Session
	lastSeen time.Time
}

func NewSessionRegistry(ttl time.Duration, sweepInterval string, logger *logrus.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		sweep:    sweepInterval,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins the periodic sweep of expired sessions.
func (r *SessionRegistry) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("session registry is already running")
	}

	schedule := fmt.Sprintf("@every %s", r.sweep)
	_, err := r.cron.AddFunc(schedule, r.sweepExpired)
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	r.cron.Start()
	r.isRunning = true
	r.logger.Info("Session registry started")
	return nil
}

// Stop halts the sweep.
func (r *SessionRegistry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	ctx := r.cron.Stop()
	<-ctx.Done()

	r.isRunning = false
	r.logger.Info("Session registry stopped")
}

// Create registers a session and returns its ID.
func (r *SessionRegistry) Create(session *browse.Session) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &sessionEntry{
		session:  session,
		lastSeen: time.Now(),
	}
	return id
}

// Get returns the session and refreshes its expiry.
func (r *SessionRegistry) Get(id string) (*browse.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// Delete removes a session.
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) sweepExpired() {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Infof("Swept %d expired sessions, %d remaining", removed, len(r.sessions))
	}
}
