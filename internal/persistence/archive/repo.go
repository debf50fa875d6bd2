package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pfassina/grimdark/internal/domain"
)

// BattleLogRow is one archived recording, same fields as domain.ReplaySession
// plus the storage-assigned ID and insertion time.
type BattleLogRow struct {
	ID         int64
	ScenarioID string
	Seed       int64
	RecordedAt time.Time
	Session    domain.ReplaySession
}

// Repo persists completed battle recordings, grounded on persist.WarehouseRepo's
// Load-by-key / insert shape.
type Repo struct {
	db *DB
}

func NewRepo(db *DB) *Repo {
	return &Repo{db: db}
}

// Save inserts one archived recording and returns its assigned ID.
func (r *Repo) Save(ctx context.Context, session domain.ReplaySession, recordedAt time.Time) (int64, error) {
	blob, err := json.Marshal(session)
	if err != nil {
		return 0, fmt.Errorf("archive: marshal session: %w", err)
	}

	var id int64
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO battle_logs (scenario_id, seed, recorded_at, session)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		session.ScenarioID, session.Seed, recordedAt, blob,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("archive: insert: %w", err)
	}
	return id, nil
}

// LoadByScenario returns every archived recording for a scenario, most
// recent first.
func (r *Repo) LoadByScenario(ctx context.Context, scenarioID string) ([]BattleLogRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, scenario_id, seed, recorded_at, session
		 FROM battle_logs WHERE scenario_id = $1 ORDER BY recorded_at DESC`,
		scenarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	var result []BattleLogRow
	for rows.Next() {
		var row BattleLogRow
		var blob []byte
		if err := rows.Scan(&row.ID, &row.ScenarioID, &row.Seed, &row.RecordedAt, &blob); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		if err := json.Unmarshal(blob, &row.Session); err != nil {
			return nil, fmt.Errorf("archive: unmarshal session %d: %w", row.ID, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
