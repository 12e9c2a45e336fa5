package twofactor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/suite"

	"github.com/pongarena/playerhub/internal/dependencies/mocks"
	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/qr"
	"github.com/pongarena/playerhub/internal/storage/memory"
	"github.com/pongarena/playerhub/internal/testutil"
)

const testSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, qr.New(0), Config{Issuer: "arcade"}, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedPlayer() *model.Player {
	player, err := s.storage.CreatePlayer(s.ctx, &model.Player{
		ID:       101,
		Username: "alice",
		Status:   model.StatusOnline,
		Email:    "alice@example.com",
	})
	s.Require().NoError(err)
	return player
}

func (s *ServiceSuite) TestNewFillsConfigDefaults() {
	svc := New(s.storage, s.clock, s.random, qr.New(0), Config{}, testutil.NopLogger())
	s.Equal(DefaultConfig(), svc.cfg)

	// A partial config keeps the skew tolerance too
	partial := New(s.storage, s.clock, s.random, qr.New(0), Config{Issuer: "arcade"}, testutil.NopLogger())
	s.Equal(DefaultConfig().Skew, partial.cfg.Skew)
}

// GenerateSecret tests

func (s *ServiceSuite) TestGenerateSecretPersistsSecret() {
	player := s.seedPlayer()
	s.random.QueueString(testSecret)

	enrollment, err := s.service.GenerateSecret(s.ctx, player)
	s.Require().NoError(err)
	s.Equal(testSecret, enrollment.Secret)

	stored, err := s.storage.GetPlayer(s.ctx, 101)
	s.Require().NoError(err)
	s.Equal(testSecret, stored.Secret)
}

func (s *ServiceSuite) TestGenerateSecretDoesNotEnable() {
	player := s.seedPlayer()
	s.random.QueueString(testSecret)

	_, err := s.service.GenerateSecret(s.ctx, player)
	s.Require().NoError(err)

	stored, _ := s.storage.GetPlayer(s.ctx, 101)
	s.False(stored.TwoFAEnabled)
}

func (s *ServiceSuite) TestGenerateSecretBuildsEnrollmentURI() {
	player := s.seedPlayer()
	s.random.QueueString(testSecret)

	enrollment, err := s.service.GenerateSecret(s.ctx, player)
	s.Require().NoError(err)

	s.True(strings.HasPrefix(enrollment.OtpauthURL, "otpauth://totp/arcade:alice%40example.com?"))
	s.Contains(enrollment.OtpauthURL, "secret="+testSecret)
	s.Contains(enrollment.OtpauthURL, "issuer=arcade")
}

func (s *ServiceSuite) TestGenerateSecretUnknownPlayer() {
	s.random.QueueString(testSecret)
	_, err := s.service.GenerateSecret(s.ctx, &model.Player{ID: 999})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestEnrollmentForUsesStoredSecret() {
	player := s.seedPlayer()
	player.Secret = testSecret

	enrollment, err := s.service.EnrollmentFor(player)
	s.Require().NoError(err)
	s.Equal(testSecret, enrollment.Secret)
	s.Contains(enrollment.OtpauthURL, "secret="+testSecret)
}

func (s *ServiceSuite) TestEnrollmentForWithoutSecret() {
	player := s.seedPlayer()

	_, err := s.service.EnrollmentFor(player)
	s.ErrorIs(err, ErrNotEnrolled)
}

// Verify tests

func (s *ServiceSuite) TestVerifyAcceptsCurrentCode() {
	player := s.seedPlayer()
	player.Secret = testSecret

	code, err := totp.GenerateCode(testSecret, s.clock.Now())
	s.Require().NoError(err)

	s.True(s.service.Verify(player, code))
}

func (s *ServiceSuite) TestVerifyAcceptsAdjacentStep() {
	player := s.seedPlayer()
	player.Secret = testSecret

	code, err := totp.GenerateCode(testSecret, s.clock.Now().Add(-30*time.Second))
	s.Require().NoError(err)

	s.True(s.service.Verify(player, code))
}

func (s *ServiceSuite) TestVerifyRejectsStaleCode() {
	player := s.seedPlayer()
	player.Secret = testSecret

	code, err := totp.GenerateCode(testSecret, s.clock.Now().Add(-5*time.Minute))
	s.Require().NoError(err)

	s.False(s.service.Verify(player, code))
}

func (s *ServiceSuite) TestVerifyRejectsCodeFromOtherSecret() {
	player := s.seedPlayer()
	player.Secret = testSecret

	other := "KRSXG5CTMVRXEZLUKRSXG5CTMVRXEZLU"
	code, err := totp.GenerateCode(other, s.clock.Now())
	s.Require().NoError(err)

	s.False(s.service.Verify(player, code))
}

func (s *ServiceSuite) TestVerifyRejectsWithoutSecret() {
	player := s.seedPlayer()
	s.False(s.service.Verify(player, "123456"))
}

func (s *ServiceSuite) TestVerifyDoesNotMutate() {
	player := s.seedPlayer()
	player.Secret = testSecret

	code, _ := totp.GenerateCode(testSecret, s.clock.Now())
	s.service.Verify(player, code)

	stored, _ := s.storage.GetPlayer(s.ctx, 101)
	s.False(stored.TwoFAEnabled)
	s.Empty(stored.Secret)
}

// TurnOn / SetSecret tests

func (s *ServiceSuite) TestTurnOn() {
	s.seedPlayer()

	s.Require().NoError(s.service.TurnOn(s.ctx, 101))

	stored, _ := s.storage.GetPlayer(s.ctx, 101)
	s.True(stored.TwoFAEnabled)
}

func (s *ServiceSuite) TestTurnOnUnknownPlayer() {
	s.ErrorIs(s.service.TurnOn(s.ctx, 999), model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestSetSecret() {
	s.seedPlayer()

	s.Require().NoError(s.service.SetSecret(s.ctx, 101, testSecret))

	stored, _ := s.storage.GetPlayer(s.ctx, 101)
	s.Equal(testSecret, stored.Secret)
}

// Enrollment image test

func (s *ServiceSuite) TestWriteEnrollmentImageProducesPNG() {
	var buf bytes.Buffer
	err := s.service.WriteEnrollmentImage(&buf, "otpauth://totp/arcade:alice?secret="+testSecret+"&issuer=arcade")
	s.Require().NoError(err)

	// PNG magic bytes
	s.True(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
