package analytics

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/minisearch/minisearch/pkg/postgres"
)

const createQueryLogTable = `
CREATE TABLE IF NOT EXISTS query_log (
	id          BIGSERIAL PRIMARY KEY,
	outcome     TEXT        NOT NULL,
	query       TEXT        NOT NULL,
	terms       TEXT[]      NOT NULL DEFAULT '{}',
	total_hits  INTEGER     NOT NULL,
	returned    INTEGER     NOT NULL,
	latency_ms  BIGINT      NOT NULL,
	cache_hit   BOOLEAN     NOT NULL,
	request_id  TEXT,
	created_at  TIMESTAMPTZ NOT NULL
)`

// Store persists query events into a Postgres query_log table.
type Store struct {
	client *postgres.Client
}

// NewStore ensures the query_log table exists and returns a Store.
func NewStore(ctx context.Context, client *postgres.Client) (*Store, error) {
	if _, err := client.DB.ExecContext(ctx, createQueryLogTable); err != nil {
		return nil, fmt.Errorf("creating query_log table: %w", err)
	}
	return &Store{client: client}, nil
}

// Insert writes one event to the query log.
func (s *Store) Insert(ctx context.Context, event QueryEvent) error {
	return s.client.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO query_log
				(outcome, query, terms, total_hits, returned, latency_ms, cache_hit, request_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			event.Outcome,
			event.Query,
			pq.Array(event.Terms),
			event.TotalHits,
			event.Returned,
			event.LatencyMs,
			event.CacheHit,
			event.RequestID,
			event.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("inserting query_log row: %w", err)
		}
		return nil
	})
}

// TopQueries returns the n most frequent ranked queries from the log.
func (s *Store) TopQueries(ctx context.Context, n int) ([]QueryCount, error) {
	rows, err := s.client.DB.QueryContext(ctx, `
		SELECT query, COUNT(*) AS cnt
		FROM query_log
		WHERE outcome = 'ranked'
		GROUP BY query
		ORDER BY cnt DESC, query ASC
		LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("querying top queries: %w", err)
	}
	defer rows.Close()

	var result []QueryCount
	for rows.Next() {
		var qc QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, fmt.Errorf("scanning top-query row: %w", err)
		}
		result = append(result, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top-query rows: %w", err)
	}
	return result, nil
}

// OutcomeCounts returns the number of logged queries per outcome kind.
func (s *Store) OutcomeCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.client.DB.QueryContext(ctx, `
		SELECT outcome, COUNT(*)
		FROM query_log
		GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("querying outcome counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var outcome string
		var count int64
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("scanning outcome-count row: %w", err)
		}
		counts[outcome] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome-count rows: %w", err)
	}
	return counts, nil
}
