package relations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage/memory"
	"github.com/pongarena/playerhub/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()

	for id, name := range map[model.PlayerID]string{1: "alice", 2: "bob"} {
		_, err := s.storage.CreatePlayer(s.ctx, &model.Player{
			ID:       id,
			Username: name,
			Status:   model.StatusOnline,
		})
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestCreateAndGet() {
	relation, err := s.service.Create(s.ctx, 1, 2, model.RelationFriend)
	s.Require().NoError(err)
	s.NotZero(relation.ID)

	got, err := s.service.Get(s.ctx, relation.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), got.PlayerID)
	s.Equal(model.PlayerID(2), got.TargetID)
}

func (s *ServiceSuite) TestCreateRequiresBothPlayers() {
	_, err := s.service.Create(s.ctx, 1, 99, model.RelationFriend)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.service.Create(s.ctx, 99, 1, model.RelationFriend)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestListByOwner() {
	_, _ = s.service.Create(s.ctx, 1, 2, model.RelationFriend)
	_, _ = s.service.Create(s.ctx, 2, 1, model.RelationBlocked)

	owner := model.PlayerID(1)
	mine, err := s.service.List(s.ctx, model.RelationFilter{PlayerID: &owner})
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(model.RelationFriend, mine[0].Kind)
}

func (s *ServiceSuite) TestDelete() {
	relation, _ := s.service.Create(s.ctx, 1, 2, model.RelationFriend)

	s.Require().NoError(s.service.Delete(s.ctx, relation.ID))
	_, err := s.service.Get(s.ctx, relation.ID)
	s.ErrorIs(err, model.ErrRelationNotFound)
}

func (s *ServiceSuite) TestDeleteMissing() {
	s.ErrorIs(s.service.Delete(s.ctx, 42), model.ErrRelationNotFound)
}
