package factory

import (
	"time"

	"github.com/pongarena/playerhub/internal/avatar"
	"github.com/pongarena/playerhub/internal/dependencies/mocks"
	"github.com/pongarena/playerhub/internal/qr"
	"github.com/pongarena/playerhub/internal/services/identity"
	"github.com/pongarena/playerhub/internal/services/twofactor"
	"github.com/pongarena/playerhub/internal/storage/memory"
	"github.com/pongarena/playerhub/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	identityCfg := identity.Config{Secret: []byte("test-token-secret")}

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		avatar.New(""),
		qr.New(0),
		identityCfg,
		twofactor.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
