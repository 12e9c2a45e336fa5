package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	raw, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		player, err := s.GetPlayer(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		if filter.Matches(player) {
			players = append(players, player)
		}
	}

	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	// Claim the username first; SETNX is the uniqueness constraint
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(player.Username), int64(player.ID), 0).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, model.ErrUsernameTaken
	}

	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	created, err := s.client.SetNX(ctx, playerKey(player.ID), data, 0).Result()
	if err != nil {
		return nil, err
	}
	if !created {
		// Same external id already present: release the claim and report conflict
		_ = s.client.Del(ctx, usernameIndexKey(player.Username)).Err()
		return nil, model.ErrPlayerExists
	}

	if err := s.client.SAdd(ctx, playersIndexKey(), int64(player.ID)).Err(); err != nil {
		return nil, err
	}

	cp := *player
	return &cp, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	oldUsername := player.Username
	if patch.Username != nil && *patch.Username != oldUsername {
		claimed, err := s.client.SetNX(ctx, usernameIndexKey(*patch.Username), int64(id), 0).Result()
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, model.ErrUsernameTaken
		}
	}

	patch.Apply(player)

	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(id), data, 0)
	if player.Username != oldUsername {
		pipe.Del(ctx, usernameIndexKey(oldUsername))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return player, nil
}

func (s *Storage) UpsertPlayerStatus(ctx context.Context, create *model.Player, status model.Status) (*model.Player, error) {
	var result *model.Player

	// Watch the player key so create-vs-update is decided atomically
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, playerKey(create.ID)).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		if err == nil {
			var player model.Player
			if err := json.Unmarshal(data, &player); err != nil {
				return err
			}
			player.Status = status

			updated, err := json.Marshal(&player)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, playerKey(player.ID), updated, 0)
				return nil
			})
			result = &player
			return err
		}

		cp := *create
		cp.Status = status
		fresh, err := json.Marshal(&cp)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetNX(ctx, usernameIndexKey(cp.Username), int64(cp.ID), 0)
			pipe.Set(ctx, playerKey(cp.ID), fresh, 0)
			pipe.SAdd(ctx, playersIndexKey(), int64(cp.ID))
			return nil
		})
		result = &cp
		return err
	}, playerKey(create.ID))

	if errors.Is(err, redis.TxFailedErr) {
		// Lost the race to a concurrent first-login; the record now exists
		return s.UpsertPlayerStatus(ctx, create, status)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Relation operations

func (s *Storage) CreateRelation(ctx context.Context, relation *model.Relation) (*model.Relation, error) {
	seq, err := s.client.Incr(ctx, relationSeqKey()).Result()
	if err != nil {
		return nil, err
	}

	cp := *relation
	cp.ID = model.RelationID(seq)

	data, err := json.Marshal(&cp)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, relationKey(cp.ID), data, 0)
	pipe.SAdd(ctx, relationsIndexKey(), seq)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return &cp, nil
}

func (s *Storage) GetRelation(ctx context.Context, id model.RelationID) (*model.Relation, error) {
	data, err := s.client.Get(ctx, relationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRelationNotFound
		}
		return nil, err
	}

	var relation model.Relation
	if err := json.Unmarshal(data, &relation); err != nil {
		return nil, err
	}
	return &relation, nil
}

func (s *Storage) ListRelations(ctx context.Context, filter model.RelationFilter) ([]*model.Relation, error) {
	ids, err := s.client.SMembers(ctx, relationsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	relations := make([]*model.Relation, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		relation, err := s.GetRelation(ctx, model.RelationID(id))
		if err != nil {
			if errors.Is(err, model.ErrRelationNotFound) {
				continue
			}
			return nil, err
		}
		if filter.Matches(relation) {
			relations = append(relations, relation)
		}
	}

	sort.Slice(relations, func(i, j int) bool { return relations[i].ID < relations[j].ID })
	return relations, nil
}

func (s *Storage) DeleteRelation(ctx context.Context, id model.RelationID) error {
	deleted, err := s.client.Del(ctx, relationKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrRelationNotFound
	}
	return s.client.SRem(ctx, relationsIndexKey(), int64(id)).Err()
}
