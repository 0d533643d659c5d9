package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"navcard-cli/internal/model"
)

const eventsFileName = "events.sqlite"

// The event log is an append-only history of applied mutations. It is never
// replayed into state; tooling and people read it.

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

func (s Store) openEventsDB(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.eventsPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database
	// is locked" flakiness when the TUI and a CLI call overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", strings.TrimSuffix(p, ";"), err)
		}
	}
	if err := ensureEventsSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureEventsSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS events (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id TEXT NOT NULL UNIQUE,
	card_id TEXT NOT NULL,
	type TEXT NOT NULL,
	entity_id TEXT NOT NULL DEFAULT '',
	payload_json TEXT NOT NULL DEFAULT '',
	at_unixms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_card ON events(card_id, seq);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AppendEvent records one applied mutation. Callers only append after a
// mutation actually changed something.
func (s Store) AppendEvent(ctx context.Context, cardID, typ, entityID string, payload any) error {
	cardID = strings.TrimSpace(cardID)
	typ = strings.TrimSpace(typ)
	if cardID == "" || typ == "" {
		return nil
	}

	payloadJSON := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		payloadJSON = string(b)
	}

	db, err := s.openEventsDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO events (event_id, card_id, type, entity_id, payload_json, at_unixms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), cardID, typ, strings.TrimSpace(entityID), payloadJSON,
		time.Now().UnixMilli(),
	)
	return err
}

// ReadEvents returns events oldest-first. cardID == "" reads across cards;
// limit == 0 means all.
func (s Store) ReadEvents(ctx context.Context, cardID string, limit int) ([]model.Event, error) {
	db, err := s.openEventsDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, card_id, type, entity_id, payload_json, at_unixms FROM events`
	args := []any{}
	cardID = strings.TrimSpace(cardID)
	if cardID != "" {
		q += ` WHERE card_id = ?`
		args = append(args, cardID)
	}
	q += ` ORDER BY seq ASC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var (
			ev          model.Event
			payloadJSON string
		)
		if err := rows.Scan(&ev.ID, &ev.CardID, &ev.Type, &ev.EntityID, &payloadJSON, &ev.AtUnixMS); err != nil {
			return nil, err
		}
		if payloadJSON != "" {
			var p any
			if err := json.Unmarshal([]byte(payloadJSON), &p); err == nil {
				ev.Payload = p
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// ReadEventsTail returns the last limit events for a card, still
// oldest-first within the window.
func (s Store) ReadEventsTail(ctx context.Context, cardID string, limit int) ([]model.Event, error) {
	evs, err := s.ReadEvents(ctx, cardID, 0)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || len(evs) <= limit {
		return evs, nil
	}
	return evs[len(evs)-limit:], nil
}
