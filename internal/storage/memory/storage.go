package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	usernameIndex map[string]model.PlayerID
	relations     map[model.RelationID]*model.Relation
	nextRelation  model.RelationID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		usernameIndex: make(map[string]model.PlayerID),
		relations:     make(map[model.RelationID]*model.Relation),
		nextRelation:  1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *s.players[id]
	return &cp, nil
}

func (s *Storage) ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		if filter.Matches(player) {
			cp := *player
			players = append(players, &cp)
		}
	}

	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.players[player.ID]; exists {
		return nil, model.ErrPlayerExists
	}
	if _, taken := s.usernameIndex[player.Username]; taken {
		return nil, model.ErrUsernameTaken
	}

	cp := *player
	s.players[cp.ID] = &cp
	s.usernameIndex[cp.Username] = cp.ID

	out := cp
	return &out, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}

	if patch.Username != nil && *patch.Username != player.Username {
		if _, taken := s.usernameIndex[*patch.Username]; taken {
			return nil, model.ErrUsernameTaken
		}
		delete(s.usernameIndex, player.Username)
		s.usernameIndex[*patch.Username] = id
	}

	patch.Apply(player)
	cp := *player
	return &cp, nil
}

func (s *Storage) UpsertPlayerStatus(ctx context.Context, create *model.Player, status model.Status) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player, ok := s.players[create.ID]; ok {
		player.Status = status
		cp := *player
		return &cp, nil
	}

	if _, taken := s.usernameIndex[create.Username]; taken {
		return nil, model.ErrUsernameTaken
	}

	cp := *create
	cp.Status = status
	s.players[cp.ID] = &cp
	s.usernameIndex[cp.Username] = cp.ID

	out := cp
	return &out, nil
}

// Relation operations

func (s *Storage) CreateRelation(ctx context.Context, relation *model.Relation) (*model.Relation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *relation
	cp.ID = s.nextRelation
	s.nextRelation++
	s.relations[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Storage) GetRelation(ctx context.Context, id model.RelationID) (*model.Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	relation, ok := s.relations[id]
	if !ok {
		return nil, model.ErrRelationNotFound
	}
	cp := *relation
	return &cp, nil
}

func (s *Storage) ListRelations(ctx context.Context, filter model.RelationFilter) ([]*model.Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	relations := make([]*model.Relation, 0)
	for _, relation := range s.relations {
		if filter.Matches(relation) {
			cp := *relation
			relations = append(relations, &cp)
		}
	}

	sort.Slice(relations, func(i, j int) bool { return relations[i].ID < relations[j].ID })
	return relations, nil
}

func (s *Storage) DeleteRelation(ctx context.Context, id model.RelationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.relations[id]; !ok {
		return model.ErrRelationNotFound
	}
	delete(s.relations, id)
	return nil
}
