package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitwall/fantasy-gp/internal/domain/scoring"
	"github.com/pitwall/fantasy-gp/internal/platform/id"
)

// ProfileService manages scoring profiles. Historical results are shielded
// from edits here by their frozen snapshots; only unscored events feel a
// configuration change, via the recompute trigger.
type ProfileService struct {
	settingsRepo scoring.Repository
	idGen        id.Generator
	trigger      RecomputeTrigger
	logger       *slog.Logger
}

func NewProfileService(settingsRepo scoring.Repository, idGen id.Generator, trigger RecomputeTrigger, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		settingsRepo: settingsRepo,
		idGen:        idGen,
		trigger:      trigger,
		logger:       logger,
	}
}

func (s *ProfileService) GetSettings(ctx context.Context) (scoring.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetSettings")
	defer span.End()

	settings, ok, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return scoring.Settings{}, fmt.Errorf("get scoring settings: %w", err)
	}
	if !ok {
		// First read on a fresh install: expose the default as a profile so
		// admins start from the real table rather than an empty form.
		defaultProfile := scoring.Profile{ID: "default", Name: "Default", Points: scoring.Default()}
		return scoring.Settings{
			Profiles:        []scoring.Profile{defaultProfile},
			ActiveProfileID: defaultProfile.ID,
		}, nil
	}
	return settings, nil
}

// SaveProfile creates or updates one profile, allocating an id for new ones.
func (s *ProfileService) SaveProfile(ctx context.Context, profile scoring.Profile) (scoring.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.SaveProfile")
	defer span.End()

	if profile.Name == "" {
		return scoring.Profile{}, fmt.Errorf("%w: profile name is required", ErrInvalidInput)
	}
	if err := profile.Points.Validate(); err != nil {
		return scoring.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return scoring.Profile{}, err
	}

	if profile.ID == "" {
		newID, idErr := s.idGen.NewID()
		if idErr != nil {
			return scoring.Profile{}, fmt.Errorf("generate profile id: %w", idErr)
		}
		profile.ID = newID
		settings.Profiles = append(settings.Profiles, profile)
	} else {
		found := false
		for i := range settings.Profiles {
			if settings.Profiles[i].ID == profile.ID {
				settings.Profiles[i] = profile
				found = true
				break
			}
		}
		if !found {
			return scoring.Profile{}, fmt.Errorf("%w: profile %s", ErrNotFound, profile.ID)
		}
	}

	if err := s.saveAndRecompute(ctx, settings, profile.ID == settings.ActiveProfileID); err != nil {
		return scoring.Profile{}, err
	}
	return profile, nil
}

// DeleteProfile removes a profile. The active profile is refused; switch
// first, then delete.
func (s *ProfileService) DeleteProfile(ctx context.Context, profileID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.DeleteProfile")
	defer span.End()

	if profileID == "" {
		return fmt.Errorf("%w: profile id is required", ErrInvalidInput)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings.ActiveProfileID == profileID {
		return fmt.Errorf("%w: cannot delete the active profile", ErrInvalidInput)
	}

	kept := settings.Profiles[:0]
	found := false
	for _, profile := range settings.Profiles {
		if profile.ID == profileID {
			found = true
			continue
		}
		kept = append(kept, profile)
	}
	if !found {
		return fmt.Errorf("%w: profile %s", ErrNotFound, profileID)
	}
	settings.Profiles = kept

	return s.saveAndRecompute(ctx, settings, false)
}

// ActivateProfile switches the active profile and re-triggers the board.
func (s *ProfileService) ActivateProfile(ctx context.Context, profileID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.ActivateProfile")
	defer span.End()

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	if _, ok := settings.ProfileByID(profileID); !ok {
		return fmt.Errorf("%w: profile %s", ErrNotFound, profileID)
	}
	if settings.ActiveProfileID == profileID {
		return nil
	}
	settings.ActiveProfileID = profileID

	return s.saveAndRecompute(ctx, settings, true)
}

func (s *ProfileService) saveAndRecompute(ctx context.Context, settings scoring.Settings, affectsActive bool) error {
	if _, ok := settings.ActiveProfile(); !ok {
		return fmt.Errorf("%w: active profile must reference an existing profile", ErrInvalidInput)
	}
	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save scoring settings: %w", err)
	}

	if affectsActive && s.trigger != nil {
		if err := s.trigger.EnqueueRecompute(ctx); err != nil {
			s.logger.WarnContext(ctx, "enqueue leaderboard recompute after settings change failed", "error", err)
		}
	}
	return nil
}
