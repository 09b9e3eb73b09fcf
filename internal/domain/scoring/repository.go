package scoring

import "context"

type Repository interface {
	GetSettings(ctx context.Context) (Settings, bool, error)
	SaveSettings(ctx context.Context, settings Settings) error
}
