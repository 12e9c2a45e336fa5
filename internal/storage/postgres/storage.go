package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// uniqueViolation is the Postgres error code for a violated unique constraint
const uniqueViolation = "23505"

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens a Postgres connection and prepares the schema
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	s := &Storage{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithDB creates a Postgres storage with an existing handle (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			avatar TEXT NOT NULL,
			level DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			two_fa_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			secret TEXT,
			email TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS relations (
			id BIGSERIAL PRIMARY KEY,
			player_id BIGINT NOT NULL,
			target_id BIGINT NOT NULL,
			kind TEXT NOT NULL
		)`)
	return err
}

// mapError translates storage-level failures into domain errors. The
// violated constraint distinguishes an id conflict from a username one.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		if pqErr.Constraint == "players_pkey" {
			return model.ErrPlayerExists
		}
		return model.ErrUsernameTaken
	}
	return err
}

const playerColumns = "id, username, avatar, level, status, wins, losses, two_fa_enabled, COALESCE(secret, ''), email"

func scanPlayer(row interface{ Scan(...any) error }) (*model.Player, error) {
	var p model.Player
	err := row.Scan(&p.ID, &p.Username, &p.Avatar, &p.Level, &p.Status, &p.Wins, &p.Losses, &p.TwoFAEnabled, &p.Secret, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = $1", int64(id))
	return scanPlayer(row)
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE username = $1", username)
	return scanPlayer(row)
}

func (s *Storage) ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	query := "SELECT " + playerColumns + " FROM players"
	args := []any{}
	where := ""

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		if where == "" {
			where = fmt.Sprintf(" WHERE username ILIKE $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND username ILIKE $%d", len(args))
		}
	}

	rows, err := s.db.QueryContext(ctx, query+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var players []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, username, avatar, level, status, wins, losses, two_fa_enabled, secret, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`,
		int64(player.ID), player.Username, player.Avatar, player.Level, string(player.Status),
		player.Wins, player.Losses, player.TwoFAEnabled, player.Secret, player.Email)
	if err != nil {
		return nil, mapError(err)
	}

	cp := *player
	return &cp, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = $1 FOR UPDATE", int64(id))
	player, err := scanPlayer(row)
	if err != nil {
		return nil, err
	}

	patch.Apply(player)

	_, err = tx.ExecContext(ctx, `
		UPDATE players
		SET username = $2, avatar = $3, level = $4, status = $5, wins = $6, losses = $7,
		    two_fa_enabled = $8, secret = NULLIF($9, '')
		WHERE id = $1`,
		int64(id), player.Username, player.Avatar, player.Level, string(player.Status),
		player.Wins, player.Losses, player.TwoFAEnabled, player.Secret)
	if err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapError(err)
	}
	return player, nil
}

func (s *Storage) UpsertPlayerStatus(ctx context.Context, create *model.Player, status model.Status) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO players (id, username, avatar, level, status, wins, losses, two_fa_enabled, secret, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
		RETURNING `+playerColumns,
		int64(create.ID), create.Username, create.Avatar, create.Level, string(status),
		create.Wins, create.Losses, create.TwoFAEnabled, create.Secret, create.Email)

	player, err := scanPlayer(row)
	if err != nil {
		return nil, mapError(err)
	}
	return player, nil
}

// Relation operations

func (s *Storage) CreateRelation(ctx context.Context, relation *model.Relation) (*model.Relation, error) {
	cp := *relation
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO relations (player_id, target_id, kind)
		VALUES ($1, $2, $3)
		RETURNING id`,
		int64(relation.PlayerID), int64(relation.TargetID), string(relation.Kind)).Scan(&cp.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &cp, nil
}

func (s *Storage) GetRelation(ctx context.Context, id model.RelationID) (*model.Relation, error) {
	var r model.Relation
	err := s.db.QueryRowContext(ctx,
		"SELECT id, player_id, target_id, kind FROM relations WHERE id = $1", int64(id)).
		Scan(&r.ID, &r.PlayerID, &r.TargetID, &r.Kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRelationNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Storage) ListRelations(ctx context.Context, filter model.RelationFilter) ([]*model.Relation, error) {
	query := "SELECT id, player_id, target_id, kind FROM relations"
	args := []any{}
	where := ""

	if filter.PlayerID != nil {
		args = append(args, int64(*filter.PlayerID))
		where = fmt.Sprintf(" WHERE player_id = $%d", len(args))
	}
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		if where == "" {
			where = fmt.Sprintf(" WHERE kind = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND kind = $%d", len(args))
		}
	}

	rows, err := s.db.QueryContext(ctx, query+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var relations []*model.Relation
	for rows.Next() {
		var r model.Relation
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.TargetID, &r.Kind); err != nil {
			return nil, err
		}
		relations = append(relations, &r)
	}
	return relations, rows.Err()
}

func (s *Storage) DeleteRelation(ctx context.Context, id model.RelationID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM relations WHERE id = $1", int64(id))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrRelationNotFound
	}
	return nil
}
