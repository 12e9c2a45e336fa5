package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pongarena/playerhub/internal/avatar"
	"github.com/pongarena/playerhub/internal/dependencies/clock"
	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// Errors
var (
	// ErrInvalidToken covers every token failure: bad signature, expiry,
	// malformed payload, missing id claim. Callers get no finer detail.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims are the session token claims. The id is the only claim the rest
// of the system may rely on; everything else is advisory.
type Claims struct {
	PlayerID model.PlayerID `json:"id"`
	jwt.RegisteredClaims
}

// Config holds configuration for the identity service
type Config struct {
	// Secret is the HMAC signing key for session tokens
	Secret []byte
	// TokenTTL bounds the lifetime of issued tokens
	TokenTTL time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
	}
}

// Service resolves external logins into player records and handles
// session token issue/verification
type Service struct {
	storage storage.Storage
	avatars avatar.Template
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new identity service
func New(storage storage.Storage, avatars avatar.Template, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		storage: storage,
		avatars: avatars,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// FindOrCreate resolves an external login callback into a player record.
// An existing player gets its status forced to online and nothing else
// touched; a first login creates the record with its defaults. The store's
// upsert keeps concurrent first-logins for the same id from racing. A
// username collision with a different player id is a genuine conflict and
// is surfaced, not swallowed.
func (s *Service) FindOrCreate(ctx context.Context, id model.PlayerID, login, email string) (*model.Player, error) {
	create := &model.Player{
		ID:       id,
		Username: login,
		Avatar:   s.avatars.URLFor(login),
		Level:    0,
		Wins:     0,
		Losses:   0,
		Status:   model.StatusOnline,
		Email:    email,
	}

	player, err := s.storage.UpsertPlayerStatus(ctx, create, model.StatusOnline)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			// A concurrent first-login for the same id may have created the
			// record between the conflict and now; re-read before giving up.
			if _, readErr := s.storage.GetPlayer(ctx, id); readErr == nil {
				return s.storage.UpdatePlayer(ctx, id, statusPatch(model.StatusOnline))
			}
		}
		return nil, err
	}

	s.logger.Info("login resolved",
		slog.Int64("player_id", int64(player.ID)),
		slog.String("username", player.Username))
	return player, nil
}

// IssueToken signs a session token for the given player id
func (s *Service) IssueToken(id model.PlayerID) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		PlayerID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

// VerifyToken verifies the token signature and decodes its claims.
// Verification fails closed: any signature, expiry or payload problem
// yields ErrInvalidToken. The returned claims identify a player; they are
// not the player record (see ResolvePlayer).
func (s *Service) VerifyToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.PlayerID == 0 {
		// Decoded fine but carries no id claim
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ResolvePlayer verifies the token and re-fetches the canonical player
// record by the verified id. The decoded claims are never returned as if
// they were profile data.
func (s *Service) ResolvePlayer(ctx context.Context, token string) (*model.Player, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, claims.PlayerID)
}

func statusPatch(status model.Status) model.PlayerPatch {
	return model.PlayerPatch{Status: &status}
}
