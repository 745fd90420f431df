package session

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/rosterhub/internal/api"
	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/factory"
	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/store"
	"github.com/mfreeman/rosterhub/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	app       *factory.TestApp
	srv       *httptest.Server
	tokenFile string
	ctx       context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.ctx = context.Background()

	router := api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		AuthService:   s.app.AuthService,
		LeagueService: s.app.LeagueService,
	})

	s.srv = httptest.NewServer(router)
	s.T().Cleanup(s.srv.Close)

	s.tokenFile = filepath.Join(s.T().TempDir(), "token")
}

// newManager builds a manager over the shared token file, as a fresh
// process would.
func (s *ManagerSuite) newManager() (*Manager, *client.Client, *CredentialStore) {
	creds, err := NewCredentialStore(s.tokenFile)
	s.Require().NoError(err)

	gw := client.New(s.srv.URL, creds)
	return NewManager(gw, creds, testutil.NopLogger()), gw, creds
}

func (s *ManagerSuite) TestRegisterEstablishesSession() {
	m, _, creds := s.newManager()

	identity, err := m.Register(s.ctx, Registration{
		Name: "Casey", Email: "casey@example.com", Password: "password123",
		Role: model.RoleCoach,
	})
	s.Require().NoError(err)
	s.Equal(StateAuthenticated, m.State())
	s.Equal(model.RoleCoach, identity.Role)
	s.NotEmpty(creds.Token())
}

func (s *ManagerSuite) TestLoginFailureLeavesStateUnchanged() {
	m, _, creds := s.newManager()

	_, err := m.Login(s.ctx, Credentials{
		Email: "nobody@example.com", Password: "wrong",
	})
	s.Require().Error(err)
	s.Equal(StateUnauthenticated, m.State())
	s.Nil(m.Current())
	s.Empty(creds.Token())
}

func (s *ManagerSuite) TestFailedLoginKeepsExistingSession() {
	m, _, creds := s.newManager()
	_, err := m.Register(s.ctx, Registration{
		Name: "Casey", Email: "casey@example.com", Password: "password123",
		Role: model.RoleCoach,
	})
	s.Require().NoError(err)
	token := creds.Token()

	// A mistyped password on re-login must not tear down the live session
	_, err = m.Login(s.ctx, Credentials{
		Email: "casey@example.com", Password: "wrong",
	})
	s.Require().Error(err)
	s.True(client.IsKind(err, client.KindUnauthorized))

	s.Equal(StateAuthenticated, m.State())
	s.Require().NotNil(m.Current())
	s.Equal("Casey", m.Current().Name)
	s.Equal(token, creds.Token())

	// The persisted credential still resolves server-side
	identity, err := m.Restore(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(identity)
	s.Equal("Casey", identity.Name)
}

func (s *ManagerSuite) TestRestoreResumesPersistedSession() {
	m, _, _ := s.newManager()
	_, err := m.Register(s.ctx, Registration{
		Name: "Casey", Email: "casey@example.com", Password: "password123",
	})
	s.Require().NoError(err)

	// A fresh manager over the same token file resumes the session
	fresh, _, _ := s.newManager()
	identity, err := fresh.Restore(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(identity)
	s.Equal("Casey", identity.Name)
	s.Equal(StateAuthenticated, fresh.State())
}

func (s *ManagerSuite) TestRestoreWithoutTokenIsANoop() {
	m, _, _ := s.newManager()

	identity, err := m.Restore(s.ctx)
	s.Require().NoError(err)
	s.Nil(identity)
	s.Equal(StateUnauthenticated, m.State())
}

func (s *ManagerSuite) TestRestorePurgesExpiredSession() {
	m, _, _ := s.newManager()
	_, err := m.Register(s.ctx, Registration{
		Name: "Casey", Email: "casey@example.com", Password: "password123",
	})
	s.Require().NoError(err)

	s.app.FakeClock.Advance(25 * time.Hour)

	fresh, _, creds := s.newManager()
	identity, err := fresh.Restore(s.ctx)
	s.Require().NoError(err)
	s.Nil(identity)
	s.Equal(StateUnauthenticated, fresh.State())
	s.Empty(creds.Token())
}

func (s *ManagerSuite) TestRejectedRequestForcesLogout() {
	m, gw, creds := s.newManager()
	_, err := m.Register(s.ctx, Registration{
		Name: "Casey", Email: "casey@example.com", Password: "password123",
		Role: model.RoleCoach,
	})
	s.Require().NoError(err)

	s.app.FakeClock.Advance(25 * time.Hour)

	// Any authenticated call now comes back 401 and drops the session
	teams := store.NewTeams(gw)
	_, err = teams.List(s.ctx, filter.New())
	s.Require().Error(err)
	s.True(client.IsKind(err, client.KindUnauthorized))

	s.Equal(StateUnauthenticated, m.State())
	s.Nil(m.Current())
	s.Empty(creds.Token())
}

func (s *ManagerSuite) TestLogoutClearsLocalState() {
	m, _, creds := s.newManager()
	_, err := m.Register(s.ctx, Registration{
		Name: "Casey", Email: "casey@example.com", Password: "password123",
	})
	s.Require().NoError(err)

	s.Require().NoError(m.Logout())
	s.Equal(StateUnauthenticated, m.State())
	s.Nil(m.Current())
	s.Empty(creds.Token())
}

func (s *ManagerSuite) TestUpdateProfileRefreshesIdentity() {
	m, _, _ := s.newManager()
	_, err := m.Register(s.ctx, Registration{
		Name: "Casey", Email: "casey@example.com", Password: "password123",
	})
	s.Require().NoError(err)

	identity, err := m.UpdateProfile(s.ctx, model.ProfileUpdate{Name: "Casey J"})
	s.Require().NoError(err)
	s.Equal("Casey J", identity.Name)
	s.Equal("Casey J", m.Current().Name)
}
