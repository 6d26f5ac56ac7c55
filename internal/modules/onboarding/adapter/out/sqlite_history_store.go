package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kiosk/internal/modules/onboarding/domain"
	onboardingout "kiosk/internal/modules/onboarding/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteHistoryStore struct {
	db *sql.DB
}

func NewSQLiteHistoryStore(dbPath string) (onboardingout.HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteHistoryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kiosk_sessions (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  selection TEXT NOT NULL,
  passes INTEGER NOT NULL,
  skipped INTEGER NOT NULL,
  games_played INTEGER NOT NULL,
  prize_label TEXT,
  offer_id TEXT
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kiosk_sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Record(ctx context.Context, record domain.SessionRecord) error {
	selection := record.Selection
	if selection == nil {
		selection = []string{}
	}
	encoded, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	const stmt = `
INSERT INTO kiosk_sessions (id, started_at, ended_at, selection, passes, skipped, games_played, prize_label, offer_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  ended_at=excluded.ended_at,
  selection=excluded.selection,
  passes=excluded.passes,
  skipped=excluded.skipped,
  games_played=excluded.games_played,
  prize_label=excluded.prize_label,
  offer_id=excluded.offer_id;
`
	_, err = s.db.ExecContext(ctx, stmt,
		record.ID,
		record.StartedAt.UTC().Format(timeLayout),
		record.EndedAt.UTC().Format(timeLayout),
		string(encoded),
		record.Passes,
		boolToInt(record.Skipped),
		record.GamesPlayed,
		record.PrizeLabel,
		record.OfferID,
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) List(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, ended_at, selection, passes, skipped, games_played, COALESCE(prize_label, ''), COALESCE(offer_id, '')
FROM kiosk_sessions
ORDER BY ended_at DESC, id
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.SessionRecord{}
	for rows.Next() {
		var (
			r                  domain.SessionRecord
			startedAt, endedAt string
			selection          string
			skipped            int
		)
		if err := rows.Scan(&r.ID, &startedAt, &endedAt, &selection, &r.Passes, &skipped, &r.GamesPlayed, &r.PrizeLabel, &r.OfferID); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if r.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, fmt.Errorf("parse ended_at: %w", err)
		}
		if err := json.Unmarshal([]byte(selection), &r.Selection); err != nil {
			return nil, fmt.Errorf("decode selection: %w", err)
		}
		r.Skipped = skipped != 0
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
