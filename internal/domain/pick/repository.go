package pick

import "context"

type Repository interface {
	GetSelection(ctx context.Context, userID, eventID string) (Selection, bool, error)
	UpsertSelection(ctx context.Context, selection Selection) error
	GetSeasonPicks(ctx context.Context, userID string) (SeasonPicks, bool, error)
	ListSeasonPicks(ctx context.Context) ([]SeasonPicks, error)
}
