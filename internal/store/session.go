package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// currentSession names the single session row.
const currentSession = "current"

// sessionRepo implements SessionRepo on the session_states table.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Load(ctx context.Context) (*SessionState, error) {
	t := entsql.Table(SessionStatesTable.Name)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("data")).
		From(t).
		Where(entsql.EQ(t.C("name"), currentSession)).
		Limit(1).
		Query()

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if state.Version != SessionStateVersion {
		// Older layouts are discarded rather than migrated.
		return nil, nil
	}
	return &state, nil
}

func (r *sessionRepo) Save(ctx context.Context, state *SessionState) error {
	state.Version = SessionStateVersion
	state.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(SessionStatesTable.Name).
		Columns("name", "data", "updated_at").
		Values(currentSession, raw, state.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(SessionStatesTable.Name).
		Where(entsql.EQ("name", currentSession)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
