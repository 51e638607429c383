package display

import (
	"context"

	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
)

type BoardSource interface {
	Board() models.Board
	Subscribe(name string, buffer int) *queue.Subscription
}

// RunBoard pushes the current board to the hub at start and after every
// ticket or department change. Consecutive changes collapse into one read
// of the latest board.
func RunBoard(ctx context.Context, hub *Hub, src BoardSource) error {
	sub := src.Subscribe("display.board", 0)
	defer sub.Close()

	hub.PublishBoard(src.Board())
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-sub.Changes():
			if !ok {
				return nil
			}
			if c.Type.IsMediaChange() {
				continue
			}
			drain(sub)
			hub.PublishBoard(src.Board())
		case <-sub.Dropped():
			drain(sub)
			hub.PublishBoard(src.Board())
		}
	}
}

func drain(sub *queue.Subscription) {
	for {
		select {
		case _, ok := <-sub.Changes():
			if !ok {
				return
			}
		default:
			return
		}
	}
}
