package repository

import (
	"context"
	"time"

	"github.com/vogiaan1904/branchqueue/internal/models"
)

// StateRepository mirrors queue state to Redis for external readers.
// Redis is never read back into the engine.
type StateRepository interface {
	PublishChange(ctx context.Context, c models.StateChange) error
	SaveBoard(ctx context.Context, b models.Board, ttl time.Duration) error
	LoadBoard(ctx context.Context) (*models.Board, error)
}
