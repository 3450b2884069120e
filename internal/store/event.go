package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/adaptiq/ent"
	"github.com/abhisek/adaptiq/ent/attemptevent"
	"github.com/abhisek/adaptiq/ent/llmrequestevent"
	"github.com/abhisek/adaptiq/ent/sessionevent"
)

// sequenceCounter hands out the global sequence shared by every event
// table, so events of different types can be ordered against each other.
// The mutex serializes within the process; RETURNING makes the increment
// atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo over the generated ent client.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
	now    func() time.Time
}

// stamp returns the sequence number and UTC time for the next event.
func (r *eventRepo) stamp(ctx context.Context) (int64, time.Time, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("next sequence: %w", err)
	}
	return seqNum, r.now().UTC(), nil
}

// rangePredicates converts QueryOpts into an entity's sequence and
// timestamp predicates.
func rangePredicates[P any](opts QueryOpts, seqGT, seqLT func(int64) P, tsGTE, tsLTE func(time.Time) P) []P {
	var preds []P
	if opts.After > 0 {
		preds = append(preds, seqGT(opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, seqLT(opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, tsGTE(opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, tsLTE(opts.To.UTC()))
	}
	return preds
}

func (r *eventRepo) Purge(ctx context.Context) error {
	if _, err := r.client.AttemptEvent.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("purge %s: %w", attemptevent.Table, err)
	}
	if _, err := r.client.SessionEvent.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("purge %s: %w", sessionevent.Table, err)
	}
	if _, err := r.client.LLMRequestEvent.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("purge %s: %w", llmrequestevent.Table, err)
	}
	return nil
}
