package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailExists        = errors.New("email already registered")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	Identity  model.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication and session management
type Service struct {
	storage storage.Storage
	clock   clockwork.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clockwork.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a user account and a session for it. An empty role
// defaults to member.
func (s *Service) Register(ctx context.Context, name, email, password string, role model.Role) (*Session, error) {
	if role == "" {
		role = model.RoleMember
	}
	if !role.Valid() {
		return nil, model.ErrInvalidRole
	}

	// Check if the email is taken
	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		Identity: model.Identity{
			ID:    model.UserID("u_" + uuid.NewString()),
			Name:  name,
			Email: email,
			Role:  role,
		},
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return s.createSession(user), nil
}

// Login authenticates a user by email and password and creates a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// UpdateProfile applies a partial profile update to a user and refreshes
// the identity held by any live sessions for that user.
func (s *Service) UpdateProfile(ctx context.Context, id model.UserID, update model.ProfileUpdate) (*model.Identity, error) {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" && update.Email != user.Email {
		// The new email must not belong to another account
		existing, err := s.storage.GetUserByEmail(ctx, update.Email)
		if err == nil && existing.ID != user.ID {
			return nil, ErrEmailExists
		}
		if err != nil && !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		user.Email = update.Email
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, session := range s.sessions {
		if session.UserID == user.ID {
			session.Identity = user.Identity
		}
	}
	s.mu.Unlock()

	return &user.Identity, nil
}

// ListUsers returns the identities of every registered account,
// ordered by creation time. Password hashes never leave the service.
func (s *Service) ListUsers(ctx context.Context) ([]model.Identity, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	identities := make([]model.Identity, 0, len(users))
	for _, user := range users {
		identities = append(identities, user.Identity)
	}
	return identities, nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *Service) createSession(user *model.User) *Session {
	token := "sess_" + uuid.NewString()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		Identity:  user.Identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}
