package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"suraah/internal/domain"
)

// IntentRepo persists the per-session pending order item so a page reload
// does not lose it. One row per session; last write wins across tabs.
type IntentRepo struct{ db *sqlx.DB }

func NewIntentRepo(db *sqlx.DB) *IntentRepo { return &IntentRepo{db: db} }

// Get returns the stored intent, or nil when the session holds none. A row
// that no longer parses is dropped and treated as empty rather than surfaced.
func (r *IntentRepo) Get(sessionID string) (*domain.OrderIntent, error) {
	var data string
	err := r.db.Get(&data, `SELECT data FROM order_intents WHERE session_id = ?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var it domain.OrderIntent
	if err := json.Unmarshal([]byte(data), &it); err != nil {
		_ = r.Clear(sessionID)
		return nil, nil
	}
	return &it, nil
}

func (r *IntentRepo) Put(sessionID string, it domain.OrderIntent) error {
	data, err := json.Marshal(it)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO order_intents(session_id, data, updated_at)
	  VALUES(?, ?, ?)
	  ON CONFLICT(session_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, sessionID, string(data), time.Now().UTC().Format(timeLayout))
	return err
}

func (r *IntentRepo) Clear(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM order_intents WHERE session_id = ?`, sessionID)
	return err
}
