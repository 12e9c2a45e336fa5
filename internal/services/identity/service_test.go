package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/pongarena/playerhub/internal/avatar"
	"github.com/pongarena/playerhub/internal/dependencies/mocks"
	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage/memory"
	"github.com/pongarena/playerhub/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	// A fixed past instant: issue and verify must agree on the injected
	// clock, so wall-clock validation would reject every token here
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.Secret = []byte("test-signing-secret")
	s.service = New(s.storage, avatar.New(""), s.clock, cfg, testutil.NopLogger())
	s.ctx = context.Background()
}

// FindOrCreate tests

func (s *ServiceSuite) TestFindOrCreateNewPlayer() {
	player, err := s.service.FindOrCreate(s.ctx, 101, "alice", "alice@example.com")
	s.Require().NoError(err)

	s.Equal(model.PlayerID(101), player.ID)
	s.Equal("alice", player.Username)
	s.Equal("https://avatars.dicebear.com/api/croodles/alice.svg", player.Avatar)
	s.Equal(0.0, player.Level)
	s.Equal(0, player.Wins)
	s.Equal(0, player.Losses)
	s.Equal(model.StatusOnline, player.Status)
	s.False(player.TwoFAEnabled)
	s.Equal("alice@example.com", player.Email)
}

func (s *ServiceSuite) TestFindOrCreatePersistsNewPlayer() {
	_, err := s.service.FindOrCreate(s.ctx, 101, "alice", "alice@example.com")
	s.Require().NoError(err)

	got, err := s.storage.GetPlayer(s.ctx, 101)
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
}

func (s *ServiceSuite) TestFindOrCreateExistingSetsOnlyStatus() {
	_, err := s.service.FindOrCreate(s.ctx, 101, "alice", "alice@example.com")
	s.Require().NoError(err)

	// Accumulate gameplay state and go offline
	level := 2.5
	wins := 12
	offline := model.StatusOffline
	secret := "JBSWY3DPEHPK3PXP"
	_, err = s.storage.UpdatePlayer(s.ctx, 101, model.PlayerPatch{
		Level:  &level,
		Wins:   &wins,
		Status: &offline,
		Secret: &secret,
	})
	s.Require().NoError(err)

	// A later login must only flip the status back
	player, err := s.service.FindOrCreate(s.ctx, 101, "different-login", "other@example.com")
	s.Require().NoError(err)
	s.Equal("alice", player.Username)
	s.Equal(2.5, player.Level)
	s.Equal(12, player.Wins)
	s.Equal("JBSWY3DPEHPK3PXP", player.Secret)
	s.Equal("alice@example.com", player.Email)
	s.Equal(model.StatusOnline, player.Status)
}

func (s *ServiceSuite) TestFindOrCreateUsernameCollisionSurfaces() {
	_, err := s.service.FindOrCreate(s.ctx, 101, "alice", "alice@example.com")
	s.Require().NoError(err)

	// Different external id, same login: conflict must not be swallowed
	_, err = s.service.FindOrCreate(s.ctx, 202, "alice", "imposter@example.com")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

// Token tests

func (s *ServiceSuite) TestIssueAndVerifyToken() {
	token, err := s.service.IssueToken(101)
	s.Require().NoError(err)

	claims, err := s.service.VerifyToken(token)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(101), claims.PlayerID)
}

func (s *ServiceSuite) TestVerifyTokenTampered() {
	token, err := s.service.IssueToken(101)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token + "x")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenGarbage() {
	_, err := s.service.VerifyToken("not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenExpired() {
	token, err := s.service.IssueToken(101)
	s.Require().NoError(err)

	s.clock.Advance(48 * time.Hour)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenWrongSecret() {
	other := New(s.storage, avatar.New(""), s.clock,
		Config{Secret: []byte("a-different-secret"), TokenTTL: time.Hour}, testutil.NopLogger())
	token, err := other.IssueToken(101)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyTokenMissingIDClaim() {
	// Well-signed token whose payload carries no id
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(s.clock.Now().Add(time.Hour)),
	})
	token, err := raw.SignedString([]byte("test-signing-secret"))
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestResolvePlayerRefetchesCanonicalRecord() {
	created, err := s.service.FindOrCreate(s.ctx, 101, "alice", "alice@example.com")
	s.Require().NoError(err)

	token, err := s.service.IssueToken(created.ID)
	s.Require().NoError(err)

	// Mutate after issuing: the resolved record must reflect storage, not claims
	newName := "renamed"
	_, err = s.storage.UpdatePlayer(s.ctx, 101, model.PlayerPatch{Username: &newName})
	s.Require().NoError(err)

	player, err := s.service.ResolvePlayer(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("renamed", player.Username)
}

func (s *ServiceSuite) TestResolvePlayerUnknownID() {
	token, err := s.service.IssueToken(999)
	s.Require().NoError(err)

	_, err = s.service.ResolvePlayer(s.ctx, token)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
