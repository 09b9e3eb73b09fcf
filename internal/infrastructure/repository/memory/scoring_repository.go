package memory

import (
	"context"
	"sync"

	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
)

type ScoringRepository struct {
	mu       sync.RWMutex
	settings scoring.Settings
	stored   bool
}

func NewScoringRepository(settings *scoring.Settings) *ScoringRepository {
	r := &ScoringRepository{}
	if settings != nil {
		r.settings = cloneSettings(*settings)
		r.stored = true
	}
	return r
}

func (r *ScoringRepository) GetSettings(_ context.Context) (scoring.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.stored {
		return scoring.Settings{}, false, nil
	}

	return cloneSettings(r.settings), true, nil
}

func (r *ScoringRepository) SaveSettings(_ context.Context, settings scoring.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = cloneSettings(settings)
	r.stored = true

	return nil
}

func cloneSettings(settings scoring.Settings) scoring.Settings {
	profiles := make([]scoring.Profile, 0, len(settings.Profiles))
	for _, p := range settings.Profiles {
		p.Points = p.Points.Clone()
		profiles = append(profiles, p)
	}
	settings.Profiles = profiles
	return settings
}
