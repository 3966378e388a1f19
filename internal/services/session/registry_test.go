package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ccentry/internal/models"
	"ccentry/internal/services/audit"
	"ccentry/internal/services/entry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) Record(ctx context.Context, record *models.ValidationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditor) Stats(ctx context.Context, window time.Duration) (*audit.Stats, error) {
	args := m.Called(ctx, window)
	stats, _ := args.Get(0).(*audit.Stats)
	return stats, args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ObserveValidation(source, brand string, valid bool) {
	m.Called(source, brand, valid)
}

func (m *MockMetrics) ObserveValidityChange(valid bool) {
	m.Called(valid)
}

func (m *MockMetrics) ObserveBrandChange(brand string) {
	m.Called(brand)
}

func (m *MockMetrics) ObserveFocusAdvance(field string) {
	m.Called(field)
}

func (m *MockMetrics) SetActiveSessions(count int) {
	m.Called(count)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(t *testing.T, cfg Config, opts ...Option) (*Registry, *testClock) {
	t.Helper()
	clock := newTestClock()
	opts = append([]Option{WithClock(clock.Now), WithSweepInterval(0)}, opts...)
	r := NewRegistry(cfg, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r, clock
}

func zipConfig(includeZip bool) *entry.Config {
	cfg := entry.DefaultConfig()
	cfg.IncludeZip = includeZip
	return &cfg
}

func TestRegistry_CreateUsesDefaults(t *testing.T) {
	r, clock := newTestRegistry(t, Config{TTL: time.Minute, Defaults: entry.DefaultConfig()})

	v, err := r.Create(context.Background(), "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.True(t, v.Config.IncludeZip)
	assert.NotNil(t, v.PostalCode)
	assert.Equal(t, "unknown", v.Brand)
	assert.Equal(t, entry.FieldNumber, v.Focus)
	assert.Equal(t, "Enter your credit card number", v.HelperText)
	assert.Equal(t, entry.DefaultCardNumberHint, v.CardNumberHint)
	assert.Empty(t, v.Events)
	assert.Equal(t, clock.Now().Add(time.Minute), v.ExpiresAt)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_EntryFlow(t *testing.T) {
	auditor := new(MockAuditor)
	r, _ := newTestRegistry(t, Config{}, WithAuditor(auditor))
	ctx := context.Background()

	v, err := r.Create(ctx, "client-1", zipConfig(false))
	require.NoError(t, err)
	id := v.ID

	v, err = r.Input(ctx, id, "client-1", entry.FieldNumber, "4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "4111 1111 1111 1111", v.Display)
	want := []entry.Event{
		{Kind: entry.EventBrand, Brand: "visa"},
		{Kind: entry.EventFocus, Field: entry.FieldExpiration, Reason: entry.FocusAdvance},
	}
	if diff := cmp.Diff(want, v.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	_, err = r.Input(ctx, id, "client-1", entry.FieldExpiration, "12/30")
	require.NoError(t, err)

	auditor.On("Record", mock.Anything, mock.MatchedBy(func(rec *models.ValidationRecord) bool {
		return rec.Source == models.SourceForm && rec.SessionID == id &&
			rec.ClientID == "client-1" && rec.Brand == "visa" && rec.Valid
	})).Return(nil).Once()

	v, err = r.Input(ctx, id, "client-1", entry.FieldSecurityCode, "123")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	require.NotNil(t, v.Card)
	assert.Equal(t, "**** **** **** 1111", v.Card.Masked)
	assert.Equal(t, "1111", v.Card.LastFour)
	assert.Equal(t, "12/30", v.Card.Expiration)
	valid := true
	want = []entry.Event{{Kind: entry.EventValidity, Valid: &valid}}
	if diff := cmp.Diff(want, v.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	auditor.AssertExpectations(t)
}

func TestRegistry_AuditFailureDoesNotFailInput(t *testing.T) {
	auditor := new(MockAuditor)
	auditor.On("Record", mock.Anything, mock.Anything).Return(errors.New("db down"))
	r, _ := newTestRegistry(t, Config{}, WithAuditor(auditor))
	ctx := context.Background()

	v, err := r.Create(ctx, "", zipConfig(false))
	require.NoError(t, err)
	_, err = r.Input(ctx, v.ID, "", entry.FieldNumber, "4111111111111111")
	require.NoError(t, err)
	_, err = r.Input(ctx, v.ID, "", entry.FieldExpiration, "12/30")
	require.NoError(t, err)
	v, err = r.Input(ctx, v.ID, "", entry.FieldSecurityCode, "123")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	auditor.AssertNumberOfCalls(t, "Record", 1)
}

func TestRegistry_SlowAuditDoesNotBlockReads(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	unblock := sync.OnceFunc(func() { close(release) })
	defer unblock()

	auditor := new(MockAuditor)
	auditor.On("Record", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	r, _ := newTestRegistry(t, Config{}, WithAuditor(auditor))
	ctx := context.Background()

	a, err := r.Create(ctx, "client", zipConfig(false))
	require.NoError(t, err)
	b, err := r.Create(ctx, "client", zipConfig(false))
	require.NoError(t, err)
	_, err = r.Input(ctx, a.ID, "client", entry.FieldExpiration, "12/30")
	require.NoError(t, err)
	_, err = r.Input(ctx, a.ID, "client", entry.FieldSecurityCode, "123")
	require.NoError(t, err)

	inputDone := make(chan error, 1)
	go func() {
		_, err := r.Input(ctx, a.ID, "client", entry.FieldNumber, "4111111111111111")
		inputDone <- err
	}()
	<-started

	gets := make(chan error, 2)
	for _, id := range []string{a.ID, b.ID} {
		go func(id string) {
			_, err := r.Get(ctx, id, "client")
			gets <- err
		}(id)
	}
	for i := 0; i < 2; i++ {
		select {
		case err := <-gets:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Get blocked behind an in-flight audit write")
		}
	}

	unblock()
	require.NoError(t, <-inputDone)
	auditor.AssertExpectations(t)
}

func TestRegistry_FieldErrors(t *testing.T) {
	r, _ := newTestRegistry(t, Config{})
	ctx := context.Background()

	v, err := r.Create(ctx, "", zipConfig(false))
	require.NoError(t, err)

	_, err = r.Input(ctx, v.ID, "", entry.FieldPostalCode, "94107")
	assert.ErrorIs(t, err, entry.ErrZipDisabled)
	_, err = r.Focus(ctx, v.ID, "", entry.FieldPostalCode)
	assert.ErrorIs(t, err, entry.ErrZipDisabled)
	_, err = r.Input(ctx, v.ID, "", entry.FieldNone, "x")
	assert.ErrorIs(t, err, entry.ErrUnknownField)
}

func TestRegistry_FocusAndClear(t *testing.T) {
	r, _ := newTestRegistry(t, Config{})
	ctx := context.Background()

	v, err := r.Create(ctx, "", zipConfig(true))
	require.NoError(t, err)

	v, err = r.Focus(ctx, v.ID, "", entry.FieldSecurityCode)
	require.NoError(t, err)
	assert.Equal(t, entry.FieldSecurityCode, v.Focus)
	assert.Equal(t, "card_back", v.CardImage)
	want := []entry.Event{{Kind: entry.EventFocus, Field: entry.FieldSecurityCode, Reason: entry.FocusManual}}
	if diff := cmp.Diff(want, v.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	_, err = r.Input(ctx, v.ID, "", entry.FieldNumber, "37")
	require.NoError(t, err)

	v, err = r.Clear(ctx, v.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "unknown", v.Brand)
	assert.Empty(t, v.Number.Text)
	assert.Equal(t, entry.FieldNumber, v.Focus)
	want = []entry.Event{
		{Kind: entry.EventBrand, Brand: "unknown"},
		{Kind: entry.EventFocus, Field: entry.FieldNumber, Reason: entry.FocusManual},
	}
	if diff := cmp.Diff(want, v.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ClientIsolation(t *testing.T) {
	r, _ := newTestRegistry(t, Config{})
	ctx := context.Background()

	v, err := r.Create(ctx, "client-a", nil)
	require.NoError(t, err)

	_, err = r.Get(ctx, v.ID, "client-b")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.Delete(ctx, v.ID, "client-b"), ErrSessionNotFound)

	_, err = r.Get(ctx, v.ID, "client-a")
	assert.NoError(t, err)
}

func TestRegistry_Expiry(t *testing.T) {
	r, clock := newTestRegistry(t, Config{TTL: time.Minute})
	ctx := context.Background()

	a, err := r.Create(ctx, "", nil)
	require.NoError(t, err)
	b, err := r.Create(ctx, "", nil)
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	_, err = r.Get(ctx, a.ID, "")
	require.NoError(t, err, "touching a session extends it")

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, err = r.Get(ctx, b.ID, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	clock.Advance(2 * time.Minute)
	_, err = r.Get(ctx, a.ID, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Limits(t *testing.T) {
	m := new(MockMetrics)
	m.On("SetActiveSessions", mock.Anything).Return()
	r, _ := newTestRegistry(t, Config{MaxSessions: 1}, WithMetrics(m))
	ctx := context.Background()

	v, err := r.Create(ctx, "", nil)
	require.NoError(t, err)
	_, err = r.Create(ctx, "", nil)
	assert.ErrorIs(t, err, ErrTooManySessions)

	require.NoError(t, r.Delete(ctx, v.ID, ""))
	_, err = r.Create(ctx, "", nil)
	assert.NoError(t, err)

	m.AssertCalled(t, "SetActiveSessions", 1)
	m.AssertCalled(t, "SetActiveSessions", 0)
}

func TestRegistry_MetricsObserver(t *testing.T) {
	m := new(MockMetrics)
	m.On("SetActiveSessions", mock.Anything).Return()
	m.On("ObserveBrandChange", "visa").Return().Once()
	m.On("ObserveFocusAdvance", "expiration").Return().Once()
	r, _ := newTestRegistry(t, Config{}, WithMetrics(m))
	ctx := context.Background()

	v, err := r.Create(ctx, "", nil)
	require.NoError(t, err)
	_, err = r.Input(ctx, v.ID, "", entry.FieldNumber, "4111111111111111")
	require.NoError(t, err)

	m.AssertExpectations(t)
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry(Config{TTL: time.Minute}, WithSweepInterval(time.Millisecond))
	ctx := context.Background()

	v, err := r.Create(ctx, "", nil)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Get(ctx, v.ID, "")
	assert.ErrorIs(t, err, ErrRegistryClosed)
	_, err = r.Create(ctx, "", nil)
	assert.ErrorIs(t, err, ErrRegistryClosed)
}

func TestRegistry_ConcurrentInput(t *testing.T) {
	r, _ := newTestRegistry(t, Config{})
	ctx := context.Background()

	v, err := r.Create(ctx, "", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = r.Input(ctx, v.ID, "", entry.FieldSecurityCode, "12")
				_, _ = r.Get(ctx, v.ID, "")
			}
		}()
	}
	wg.Wait()

	v, err = r.Get(ctx, v.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "12", v.SecurityCode.Text)
}
