// Package session keeps card forms alive between HTTP requests so a remote
// host can drive the entry engine one keystroke at a time.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ccentry/internal/metrics"
	"ccentry/internal/models"
	"ccentry/internal/services/audit"
	"ccentry/internal/services/entry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTTL         = 15 * time.Minute
	DefaultMaxSessions = 10000
	minSweepInterval   = time.Second
)

// Config bounds the registry.
type Config struct {
	TTL         time.Duration
	MaxSessions int
	Defaults    entry.Config
}

// Option customizes a Registry.
type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithAuditor(a audit.Auditor) Option {
	return func(r *Registry) {
		if a != nil {
			r.auditor = a
		}
	}
}

func WithMetrics(m metrics.Collector) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSweepInterval overrides how often expired sessions are removed. Zero
// disables the background janitor.
func WithSweepInterval(d time.Duration) Option {
	return func(r *Registry) {
		r.sweepEvery = d
	}
}

// Registry owns every live session. It is safe for concurrent use; calls on
// the same session are serialized.
type Registry struct {
	cfg        Config
	now        func() time.Time
	logger     *zap.Logger
	auditor    audit.Auditor
	metrics    metrics.Collector
	sweepEvery time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewRegistry creates a registry and starts its janitor.
func NewRegistry(cfg Config, opts ...Option) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}

	r := &Registry{
		cfg:        cfg,
		now:        time.Now,
		logger:     zap.NewNop(),
		auditor:    audit.NoopService{},
		metrics:    metrics.NoopCollector{},
		sweepEvery: cfg.TTL / 2,
		sessions:   make(map[string]*Session),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("session")

	if r.sweepEvery > 0 {
		if r.sweepEvery < minSweepInterval {
			r.sweepEvery = minSweepInterval
		}
		r.wg.Add(1)
		go r.janitor()
	}
	return r
}

func (r *Registry) janitor() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		case <-r.done:
			return
		}
	}
}

// Create opens a session. A nil cfg uses the registry defaults.
func (r *Registry) Create(ctx context.Context, clientID string, cfg *entry.Config) (*View, error) {
	formCfg := r.cfg.Defaults
	if cfg != nil {
		formCfg = *cfg
	}

	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		CreatedAt: now,
		recorder:  &entry.Recorder{},
	}
	s.touch(now)
	s.form = entry.New(formCfg,
		entry.WithClock(r.now),
		entry.WithLogger(r.logger.With(zap.String("session_id", s.ID))),
		entry.WithObserver(s.recorder),
		entry.WithObserver(metricsObserver{metrics: r.metrics}),
	)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	if len(r.sessions) >= r.cfg.MaxSessions {
		r.mu.Unlock()
		return nil, ErrTooManySessions
	}
	r.sessions[s.ID] = s
	count := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetActiveSessions(count)
	r.logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.String("client_id", clientID),
		zap.Bool("include_zip", formCfg.IncludeZip),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	return r.view(s, ""), nil
}

// Get returns the current view and refreshes the session's expiry.
func (r *Registry) Get(ctx context.Context, id, clientID string) (*View, error) {
	s, err := r.lookup(id, clientID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(r.now())
	return r.view(s, ""), nil
}

// Input applies a text change to one field.
func (r *Registry) Input(ctx context.Context, id, clientID string, field entry.Field, text string) (*View, error) {
	s, err := r.lookup(id, clientID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if err := checkField(s.form, field); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.touch(r.now())
	display := s.form.SetText(field, text)
	v := r.view(s, display)
	record := r.auditRecord(s, v)
	s.mu.Unlock()

	r.audit(ctx, record)
	return v, nil
}

// Focus moves focus to field manually.
func (r *Registry) Focus(ctx context.Context, id, clientID string, field entry.Field) (*View, error) {
	s, err := r.lookup(id, clientID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkField(s.form, field); err != nil {
		return nil, err
	}
	s.touch(r.now())
	s.form.Focus(field)
	return r.view(s, ""), nil
}

// Clear empties the form.
func (r *Registry) Clear(ctx context.Context, id, clientID string) (*View, error) {
	s, err := r.lookup(id, clientID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.touch(r.now())
	s.form.Clear()
	v := r.view(s, "")
	record := r.auditRecord(s, v)
	s.mu.Unlock()

	r.audit(ctx, record)
	return v, nil
}

func (r *Registry) Delete(ctx context.Context, id, clientID string) error {
	if _, err := r.lookup(id, clientID); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.sessions, id)
	count := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetActiveSessions(count)
	r.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	removed := 0
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		r.metrics.SetActiveSessions(count)
	}
	return removed
}

// Close stops the janitor and drops every session. Later calls fail with
// ErrRegistryClosed or ErrSessionNotFound.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()

		r.mu.Lock()
		r.closed = true
		r.sessions = make(map[string]*Session)
		r.mu.Unlock()

		r.metrics.SetActiveSessions(0)
	})
	return nil
}

func (r *Registry) lookup(id, clientID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	s, ok := r.sessions[id]
	if !ok || (s.ClientID != "" && s.ClientID != clientID) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if r.expired(s, r.now()) {
		delete(r.sessions, id)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

func (r *Registry) expired(s *Session, now time.Time) bool {
	return now.Sub(s.LastSeen()) > r.cfg.TTL
}

// view must be called with s.mu held.
func (r *Registry) view(s *Session, display string) *View {
	v := &View{
		ID:        s.ID,
		Config:    s.form.Config(),
		Snapshot:  s.form.Snapshot(),
		Display:   display,
		Events:    s.recorder.Drain(),
		ExpiresAt: s.LastSeen().Add(r.cfg.TTL),
	}
	if v.Events == nil {
		v.Events = []entry.Event{}
	}
	if s.form.IsCreditCardValid() {
		v.Card = summarize(s.form.CreditCard())
	}
	return v
}

// auditRecord builds the record for an operation that flipped validity and
// returns nil otherwise. It must be called with s.mu held.
func (r *Registry) auditRecord(s *Session, v *View) *models.ValidationRecord {
	for _, e := range v.Events {
		if e.Kind == entry.EventValidity {
			return audit.FromSnapshot(s.ID, s.ClientID, v.Snapshot)
		}
	}
	return nil
}

// audit stores record outside any session lock; the insert may be slow.
func (r *Registry) audit(ctx context.Context, record *models.ValidationRecord) {
	if record == nil {
		return
	}

	r.metrics.ObserveValidation(models.SourceForm, record.Brand, record.Valid)
	if err := r.auditor.Record(ctx, record); err != nil {
		r.logger.Warn("failed to audit form validation",
			zap.String("session_id", record.SessionID),
			zap.Error(err),
		)
	}
}

func checkField(form *entry.Form, field entry.Field) error {
	switch field {
	case entry.FieldNumber, entry.FieldExpiration, entry.FieldSecurityCode:
		return nil
	case entry.FieldPostalCode:
		if !form.Config().IncludeZip {
			return entry.ErrZipDisabled
		}
		return nil
	}
	return fmt.Errorf("%w: %s", entry.ErrUnknownField, field)
}
