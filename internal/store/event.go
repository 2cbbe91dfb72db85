package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the fetch_events table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendFetch(ctx context.Context, data FetchEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(FetchEventsTable.Name).
		Columns("timestamp", "operation", "scope", "item_count", "latency_ms", "success", "error_message").
		Values(time.Now().UTC(), data.Operation, data.Scope, data.ItemCount, data.LatencyMs, data.Success, data.ErrorMessage).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append fetch event: %w", err)
	}
	return nil
}

func (r *eventRepo) FetchStats(ctx context.Context) ([]FetchStat, error) {
	t := entsql.Table(FetchEventsTable.Name)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			t.C("operation"),
			entsql.Count("*"),
			fmt.Sprintf("SUM(CASE WHEN %s THEN 0 ELSE 1 END)", t.C("success")),
			entsql.Avg(t.C("latency_ms")),
		).
		From(t).
		GroupBy(t.C("operation")).
		OrderBy(t.C("operation")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fetch stats: %w", err)
	}
	defer rows.Close()

	var stats []FetchStat
	for rows.Next() {
		var s FetchStat
		if err := rows.Scan(&s.Operation, &s.Calls, &s.Failures, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan fetch stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fetch stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) PruneFetches(ctx context.Context, keep int) error {
	t := entsql.Table(FetchEventsTable.Name)
	// Find the ID threshold: the Nth most recent event.
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("id")).
		From(t).
		OrderBy(entsql.Desc(t.C("id"))).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold); err != nil {
		if err == sql.ErrNoRows {
			return nil // fewer than keep events exist
		}
		return fmt.Errorf("query fetch events for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(FetchEventsTable.Name).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune fetch events: %w", err)
	}
	return nil
}
