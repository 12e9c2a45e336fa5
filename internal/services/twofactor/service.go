package twofactor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/pongarena/playerhub/internal/dependencies/clock"
	"github.com/pongarena/playerhub/internal/dependencies/random"
	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// base32Alphabet is the RFC 4648 alphabet TOTP secrets are drawn from
const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// secretLength is the length of generated secrets (160 bits of base32)
const secretLength = 32

// ErrNotEnrolled is returned when an operation needs a stored secret and
// the player has none
var ErrNotEnrolled = errors.New("player has no totp secret")

// QRRenderer writes a scannable image for an enrollment URI to a sink.
// Rendering pixels is a collaborator concern; this service only supplies
// the URI.
type QRRenderer interface {
	Render(w io.Writer, content string) error
}

// Enrollment is the result of initiating TOTP enrollment
type Enrollment struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}

// Config holds configuration for the two-factor service
type Config struct {
	// Issuer is the application name shown in authenticator apps
	Issuer string
	// Period is the TOTP time step in seconds
	Period uint
	// Skew is the clock-skew tolerance in time steps
	Skew uint
}

// DefaultConfig returns default two-factor configuration
func DefaultConfig() Config {
	return Config{
		Issuer: "playerhub",
		Period: 30,
		Skew:   1,
	}
}

// Service manages TOTP secrets for players
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	renderer QRRenderer
	cfg      Config
	logger   *slog.Logger
}

// New creates a new two-factor service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random, renderer QRRenderer, cfg Config, logger *slog.Logger) *Service {
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultConfig().Issuer
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultConfig().Period
	}
	if cfg.Skew == 0 {
		cfg.Skew = DefaultConfig().Skew
	}
	return &Service{
		storage:  storage,
		clock:    clk,
		random:   rnd,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}
}

// GenerateSecret generates a fresh TOTP secret for the player, persists it
// on the record and returns it with its enrollment URI. It never touches
// the two_fa_enabled flag; enabling is a separate, caller-driven step.
func (s *Service) GenerateSecret(ctx context.Context, player *model.Player) (*Enrollment, error) {
	secret := s.random.String(secretLength, base32Alphabet)

	if err := s.SetSecret(ctx, player.ID, secret); err != nil {
		return nil, err
	}

	s.logger.Info("totp enrollment initiated", slog.Int64("player_id", int64(player.ID)))
	return &Enrollment{
		Secret:     secret,
		OtpauthURL: s.keyURI(player.Email, secret),
	}, nil
}

// EnrollmentFor rebuilds the enrollment for a player's already-stored
// secret without rotating it. Returns ErrNotEnrolled when no secret has
// been generated yet.
func (s *Service) EnrollmentFor(player *model.Player) (*Enrollment, error) {
	if player.Secret == "" {
		return nil, ErrNotEnrolled
	}
	return &Enrollment{
		Secret:     player.Secret,
		OtpauthURL: s.keyURI(player.Email, player.Secret),
	}, nil
}

// keyURI builds the otpauth enrollment URI with the player's email as the
// account label
func (s *Service) keyURI(account, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", s.cfg.Issuer)
	label := url.PathEscape(s.cfg.Issuer) + ":" + url.PathEscape(account)
	return fmt.Sprintf("otpauth://totp/%s?%s", label, v.Encode())
}

// SetSecret persists an externally-supplied secret onto the player record
func (s *Service) SetSecret(ctx context.Context, id model.PlayerID, secret string) error {
	_, err := s.storage.UpdatePlayer(ctx, id, model.PlayerPatch{Secret: &secret})
	return err
}

// TurnOn marks two-factor authentication enabled for the player. Verify
// does not call this; the caller decides when enrollment is proven.
func (s *Service) TurnOn(ctx context.Context, id model.PlayerID) error {
	enabled := true
	_, err := s.storage.UpdatePlayer(ctx, id, model.PlayerPatch{TwoFAEnabled: &enabled})
	return err
}

// Verify checks a submitted code against the player's stored secret at the
// current time step, tolerating the configured skew. It never mutates
// state.
func (s *Service) Verify(player *model.Player, code string) bool {
	if player.Secret == "" {
		return false
	}
	valid, err := totp.ValidateCustom(code, player.Secret, s.clock.Now(), totp.ValidateOpts{
		Period:    s.cfg.Period,
		Skew:      s.cfg.Skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return valid
}

// WriteEnrollmentImage renders the enrollment URI as a scannable image
// into the sink via the QR collaborator
func (s *Service) WriteEnrollmentImage(w io.Writer, otpauthURL string) error {
	return s.renderer.Render(w, otpauthURL)
}
