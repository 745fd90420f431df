package factory

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mfreeman/rosterhub/internal/services/auth"
	"github.com/mfreeman/rosterhub/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// FakeClock allows tests to control time
	FakeClock *clockwork.FakeClock
}

// NewTestApp creates an App configured for testing with in-memory
// storage and a controllable clock
func NewTestApp() *TestApp {
	store := memory.New()
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, fakeClock, auth.DefaultConfig())

	return &TestApp{
		App:       app,
		FakeClock: fakeClock,
	}
}
