package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/model"
)

// State is the session lifecycle phase
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// Credentials are what a user presents to log in
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload for creating a new account
type Registration struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role,omitempty"`
}

// authResult is the server's auth payload: identity plus credential
type authResult struct {
	User  model.Identity `json:"user"`
	Token string         `json:"token"`
}

// Manager owns the authentication lifecycle: it is the single writer of
// the credential store and of the current identity. Every failure path
// leaves prior state unchanged except a 401 outside the login/register
// exchange, which forces the transition to Unauthenticated.
type Manager struct {
	gw     *client.Client
	creds  *CredentialStore
	logger *slog.Logger

	mu       sync.RWMutex
	state    State
	identity *model.Identity
	// inExchange marks a login/register round trip in flight: a 401
	// there is a rejected credential, not a rejected session, and must
	// not tear down whatever session we already hold.
	inExchange bool
}

// NewManager wires the manager to the gateway and credential store and
// registers itself as the gateway's 401 handler.
func NewManager(gw *client.Client, creds *CredentialStore, logger *slog.Logger) *Manager {
	m := &Manager{
		gw:     gw,
		creds:  creds,
		logger: logger,
		state:  StateUnauthenticated,
	}
	gw.OnUnauthorized(m.forceLogout)
	return m
}

// State returns the current lifecycle phase
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns the authenticated identity, or nil
func (m *Manager) Current() *model.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// Login exchanges credentials for a session. On failure state is unchanged.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*model.Identity, error) {
	return m.authenticate(ctx, "/api/v1/auth/login", creds)
}

// Register creates a new account and starts a session. Uniqueness is
// validated server-side; the rejection reason is surfaced verbatim.
func (m *Manager) Register(ctx context.Context, reg Registration) (*model.Identity, error) {
	return m.authenticate(ctx, "/api/v1/auth/register", reg)
}

func (m *Manager) authenticate(ctx context.Context, path string, body any) (*model.Identity, error) {
	m.mu.Lock()
	prior := m.state
	m.state = StateAuthenticating
	m.inExchange = true
	m.mu.Unlock()

	var result authResult
	err := m.gw.Post(ctx, path, body, &result)

	m.mu.Lock()
	m.inExchange = false
	m.mu.Unlock()

	if err != nil {
		// Rejected credentials say nothing about the session we already
		// hold; restore whatever state preceded the attempt
		m.setState(prior)
		return nil, err
	}

	if err := m.creds.Save(result.Token); err != nil {
		m.setState(prior)
		return nil, err
	}

	m.mu.Lock()
	m.identity = &result.User
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.logger.Info("session established",
		slog.String("user", string(result.User.ID)),
		slog.String("role", string(result.User.Role)))
	return m.Current(), nil
}

// Restore resolves the persisted credential into an identity at startup.
// If the server rejects it the credential is purged and nil is returned
// with no error; callers requiring auth check Current afterwards.
func (m *Manager) Restore(ctx context.Context) (*model.Identity, error) {
	if m.creds.Token() == "" {
		return nil, nil
	}

	m.setState(StateAuthenticating)

	var identity model.Identity
	if err := m.gw.Get(ctx, "/api/v1/auth/me", nil, &identity); err != nil {
		if client.IsKind(err, client.KindUnauthorized) {
			// forceLogout already ran via the gateway handler
			return nil, nil
		}
		m.setState(StateUnauthenticated)
		return nil, err
	}

	m.mu.Lock()
	m.identity = &identity
	m.state = StateAuthenticated
	m.mu.Unlock()
	return m.Current(), nil
}

// UpdateProfile mutates identity fields server-side and refreshes the
// in-memory identity.
func (m *Manager) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Identity, error) {
	var identity model.Identity
	if err := m.gw.Put(ctx, "/api/v1/auth/profile", update, &identity); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.identity = &identity
	m.mu.Unlock()
	return m.Current(), nil
}

// Logout clears the session unconditionally. It performs no network I/O
// and cannot fail because of it.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.identity = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()
	return m.creds.Clear()
}

// forceLogout is the 401 transition: purge the credential and drop the
// identity so every later call starts unauthenticated.
func (m *Manager) forceLogout() {
	m.mu.Lock()
	if m.inExchange {
		m.mu.Unlock()
		return
	}
	wasAuthenticated := m.identity != nil
	m.identity = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	_ = m.creds.Clear()

	if wasAuthenticated {
		m.logger.Warn("session rejected by server, logged out")
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
