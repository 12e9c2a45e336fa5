package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/pongarena/playerhub/internal/avatar"
	"github.com/pongarena/playerhub/internal/dependencies/clock"
	"github.com/pongarena/playerhub/internal/dependencies/random"
	"github.com/pongarena/playerhub/internal/qr"
	"github.com/pongarena/playerhub/internal/services/achievements"
	"github.com/pongarena/playerhub/internal/services/identity"
	"github.com/pongarena/playerhub/internal/services/profile"
	"github.com/pongarena/playerhub/internal/services/relations"
	"github.com/pongarena/playerhub/internal/services/twofactor"
	"github.com/pongarena/playerhub/internal/storage"
	"github.com/pongarena/playerhub/internal/storage/memory"
	postgresstorage "github.com/pongarena/playerhub/internal/storage/postgres"
	redisstorage "github.com/pongarena/playerhub/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	IdentityService     *identity.Service
	ProfileService      *profile.Service
	TwoFactorService    *twofactor.Service
	AchievementsService *achievements.Service
	RelationsService    *relations.Service
}

// Config holds configuration for the application factory
type Config struct {
	// IdentityConfig holds configuration for the identity service (optional)
	// If the token secret is empty, session tokens cannot be verified across
	// restarts; callers should set it in anything but tests
	IdentityConfig identity.Config
	// TwoFactorConfig holds configuration for the TOTP service (optional)
	// If zero value, defaults to twofactor.DefaultConfig()
	TwoFactorConfig twofactor.Config
	// AvatarBaseURL overrides the default avatar template base URL (optional)
	AvatarBaseURL string
	// QRSize is the side length in pixels of enrollment QR images (optional)
	QRSize int
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *postgresstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := postgresstorage.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	avatarBase := cfg.AvatarBaseURL
	if avatarBase == "" {
		avatarBase = avatar.DefaultTemplate
	}

	return newWithDependencies(store, clk, rnd, avatar.New(avatarBase), qr.New(cfg.QRSize), cfg.IdentityConfig, cfg.TwoFactorConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	avatars avatar.Template,
	renderer *qr.Renderer,
	identityCfg identity.Config,
	twoFactorCfg twofactor.Config,
	logger *slog.Logger,
) *App {
	// Create services
	identityService := identity.New(store, avatars, clk, identityCfg, logger)
	profileService := profile.New(store, logger)
	twoFactorService := twofactor.New(store, clk, rnd, renderer, twoFactorCfg, logger)
	achievementsService := achievements.New(store)
	relationsService := relations.New(store, logger)

	return &App{
		Storage:             store,
		Clock:               clk,
		Random:              rnd,
		IdentityService:     identityService,
		ProfileService:      profileService,
		TwoFactorService:    twoFactorService,
		AchievementsService: achievementsService,
		RelationsService:    relationsService,
	}
}
