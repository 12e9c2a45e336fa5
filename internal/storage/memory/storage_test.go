package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pongarena/playerhub/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newPlayer(id model.PlayerID, username string) *model.Player {
	return &model.Player{
		ID:       id,
		Username: username,
		Avatar:   "https://avatars.dicebear.com/api/croodles/" + username + ".svg",
		Status:   model.StatusOnline,
		Email:    username + "@example.com",
	}
}

// Player tests

func (s *StorageSuite) TestCreateAndGetPlayer() {
	created, err := s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), created.ID)

	got, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
	s.Equal(model.StatusOnline, got.Status)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 42)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByUsername() {
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))

	got, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), got.ID)

	_, err = s.storage.GetPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestCreatePlayerDuplicateUsername() {
	_, err := s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))
	s.Require().NoError(err)

	_, err = s.storage.CreatePlayer(s.ctx, s.newPlayer(2, "alice"))
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestCreatePlayerDuplicateID() {
	_, err := s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))
	s.Require().NoError(err)

	_, err = s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "bob"))
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *StorageSuite) TestUpdatePlayerUsername() {
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))

	newName := "alice2"
	updated, err := s.storage.UpdatePlayer(s.ctx, 1, model.PlayerPatch{Username: &newName})
	s.Require().NoError(err)
	s.Equal("alice2", updated.Username)

	// Old username is released, new one resolves
	_, err = s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	got, err := s.storage.GetPlayerByUsername(s.ctx, "alice2")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), got.ID)
}

func (s *StorageSuite) TestUpdatePlayerUsernameConflictLeavesRecordUntouched() {
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(2, "bob"))

	taken := "alice"
	_, err := s.storage.UpdatePlayer(s.ctx, 2, model.PlayerPatch{Username: &taken})
	s.ErrorIs(err, model.ErrUsernameTaken)

	got, err := s.storage.GetPlayer(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal("bob", got.Username)
}

func (s *StorageSuite) TestUpdatePlayerPartialPatch() {
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))

	level := 0.125
	status := model.StatusInGame
	updated, err := s.storage.UpdatePlayer(s.ctx, 1, model.PlayerPatch{Level: &level, Status: &status})
	s.Require().NoError(err)
	s.Equal(0.125, updated.Level)
	s.Equal(model.StatusInGame, updated.Status)
	s.Equal("alice", updated.Username)
}

func (s *StorageSuite) TestUpdatePlayerNotFound() {
	level := 1.0
	_, err := s.storage.UpdatePlayer(s.ctx, 42, model.PlayerPatch{Level: &level})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersFiltered() {
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(2, "bob"))
	offline := model.StatusOffline
	_, _ = s.storage.UpdatePlayer(s.ctx, 2, model.PlayerPatch{Status: &offline})

	all, err := s.storage.ListPlayers(s.ctx, model.PlayerFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	online := model.StatusOnline
	onlineOnly, err := s.storage.ListPlayers(s.ctx, model.PlayerFilter{Status: &online})
	s.Require().NoError(err)
	s.Len(onlineOnly, 1)
	s.Equal("alice", onlineOnly[0].Username)

	byName, err := s.storage.ListPlayers(s.ctx, model.PlayerFilter{Search: "BO"})
	s.Require().NoError(err)
	s.Len(byName, 1)
	s.Equal("bob", byName[0].Username)
}

func (s *StorageSuite) TestUpsertPlayerStatusCreates() {
	player, err := s.storage.UpsertPlayerStatus(s.ctx, s.newPlayer(1, "alice"), model.StatusOnline)
	s.Require().NoError(err)
	s.Equal(model.StatusOnline, player.Status)

	got, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
}

func (s *StorageSuite) TestUpsertPlayerStatusTouchesOnlyStatus() {
	_, _ = s.storage.CreatePlayer(s.ctx, s.newPlayer(1, "alice"))
	level := 2.5
	wins := 7
	_, _ = s.storage.UpdatePlayer(s.ctx, 1, model.PlayerPatch{Level: &level, Wins: &wins})

	player, err := s.storage.UpsertPlayerStatus(s.ctx, s.newPlayer(1, "somebody-else"), model.StatusOnline)
	s.Require().NoError(err)
	s.Equal("alice", player.Username)
	s.Equal(2.5, player.Level)
	s.Equal(7, player.Wins)
	s.Equal(model.StatusOnline, player.Status)
}

// Relation tests

func (s *StorageSuite) TestCreateAndGetRelation() {
	created, err := s.storage.CreateRelation(s.ctx, &model.Relation{
		PlayerID: 1,
		TargetID: 2,
		Kind:     model.RelationFriend,
	})
	s.Require().NoError(err)
	s.NotZero(created.ID)

	got, err := s.storage.GetRelation(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(2), got.TargetID)
}

func (s *StorageSuite) TestListRelationsFiltered() {
	_, _ = s.storage.CreateRelation(s.ctx, &model.Relation{PlayerID: 1, TargetID: 2, Kind: model.RelationFriend})
	_, _ = s.storage.CreateRelation(s.ctx, &model.Relation{PlayerID: 1, TargetID: 3, Kind: model.RelationBlocked})
	_, _ = s.storage.CreateRelation(s.ctx, &model.Relation{PlayerID: 2, TargetID: 1, Kind: model.RelationFriend})

	owner := model.PlayerID(1)
	mine, err := s.storage.ListRelations(s.ctx, model.RelationFilter{PlayerID: &owner})
	s.Require().NoError(err)
	s.Len(mine, 2)

	kind := model.RelationFriend
	friends, err := s.storage.ListRelations(s.ctx, model.RelationFilter{PlayerID: &owner, Kind: &kind})
	s.Require().NoError(err)
	s.Len(friends, 1)
	s.Equal(model.PlayerID(2), friends[0].TargetID)
}

func (s *StorageSuite) TestDeleteRelation() {
	created, _ := s.storage.CreateRelation(s.ctx, &model.Relation{PlayerID: 1, TargetID: 2, Kind: model.RelationFriend})

	s.Require().NoError(s.storage.DeleteRelation(s.ctx, created.ID))
	_, err := s.storage.GetRelation(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrRelationNotFound)

	s.ErrorIs(s.storage.DeleteRelation(s.ctx, created.ID), model.ErrRelationNotFound)
}
