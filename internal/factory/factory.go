package factory

import (
	"errors"

	"github.com/jonboulle/clockwork"

	"github.com/mfreeman/rosterhub/internal/services/auth"
	"github.com/mfreeman/rosterhub/internal/services/league"
	"github.com/mfreeman/rosterhub/internal/storage"
	"github.com/mfreeman/rosterhub/internal/storage/memory"
	redisstorage "github.com/mfreeman/rosterhub/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clockwork.Clock

	// Services
	AuthService   *auth.Service
	LeagueService *league.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clockwork.NewRealClock()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clockwork.Clock, authCfg auth.Config) *App {
	authService := auth.New(store, clk, authCfg)
	leagueService := league.New(store, clk)

	return &App{
		Storage:       store,
		Clock:         clk,
		AuthService:   authService,
		LeagueService: leagueService,
	}
}
