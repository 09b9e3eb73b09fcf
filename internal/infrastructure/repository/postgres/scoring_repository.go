package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
	qb "github.com/pitwall/fantasy-gp/internal/platform/querybuilder"
)

// scoring_settings holds a single row; upserts target its fixed primary key.
const scoringUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	profiles = EXCLUDED.profiles,
	active_profile_id = EXCLUDED.active_profile_id,
	updated_at = EXCLUDED.updated_at`

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) GetSettings(ctx context.Context) (scoring.Settings, bool, error) {
	query, args, err := qb.Select("*").
		From("scoring_settings").
		Limit(1).
		ToSQL()
	if err != nil {
		return scoring.Settings{}, false, fmt.Errorf("build get scoring settings query: %w", err)
	}

	var row scoringSettingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Settings{}, false, nil
		}
		return scoring.Settings{}, false, fmt.Errorf("get scoring settings: %w", err)
	}

	profiles, err := decodeProfiles(row.Profiles)
	if err != nil {
		return scoring.Settings{}, false, err
	}

	return scoring.Settings{
		Profiles:        profiles,
		ActiveProfileID: row.ActiveProfileID,
	}, true, nil
}

func (r *ScoringRepository) SaveSettings(ctx context.Context, settings scoring.Settings) error {
	encoded, err := encodeProfiles(settings.Profiles)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto("scoring_settings").
		Columns("id", "profiles", "active_profile_id", "updated_at").
		Values(int64(1), encoded, settings.ActiveProfileID, time.Now().UTC()).
		Suffix(scoringUpsertSuffix).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save scoring settings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save scoring settings: %w", err)
	}
	return nil
}
