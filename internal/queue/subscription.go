package queue

import (
	"sync"

	"github.com/vogiaan1904/branchqueue/internal/models"
)

const defaultSubscriberBuffer = 64

// Subscription delivers committed state changes. Changes that do not fit
// in the buffer are dropped and reported on Dropped.
type Subscription struct {
	name    string
	ch      chan models.StateChange
	dropped chan struct{}
	engine  *Engine
	once    sync.Once
}

func (s *Subscription) Changes() <-chan models.StateChange {
	return s.ch
}

// Dropped receives a value after one or more changes were lost. Signals
// coalesce; observers that care should re-read engine state.
func (s *Subscription) Dropped() <-chan struct{} {
	return s.dropped
}

func (s *Subscription) signalDrop() {
	select {
	case s.dropped <- struct{}{}:
	default:
	}
}

// Close detaches the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.engine.subMu.Lock()
		delete(s.engine.subs, s)
		close(s.ch)
		s.engine.subMu.Unlock()
	})
}
