package playlist

import (
	"context"
	"sync"

	"github.com/vogiaan1904/branchqueue/internal/metrics"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/pkg/clock"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

// Renderer is the display capability. Calls must not block.
type Renderer interface {
	Render(item models.MarketingMedia)
	Clear()
}

// Source provides the media sequence and its change notifications.
type Source interface {
	Playlist() []models.MarketingMedia
	Subscribe(name string, buffer int) *queue.Subscription
}

type Option func(*Scheduler)

func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// Scheduler rotates through the media sequence, showing each item for
// its own duration. Timers carry the generation they were armed in and
// are ignored once a rebind or stop has moved past it.
type Scheduler struct {
	mu         sync.Mutex
	items      []models.MarketingMedia
	index      int
	timer      *clock.Timer
	generation uint64
	running    bool

	renderer Renderer
	clock    clock.Clock
	metrics  *metrics.Metrics
	l        logger.Logger
}

func NewScheduler(renderer Renderer, l logger.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		renderer: renderer,
		clock:    clock.Real(),
		l:        l,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start shows the first item and arms its timer.
func (s *Scheduler) Start(items []models.MarketingMedia) {
	s.mu.Lock()
	s.running = true
	s.items = playable(items)
	s.index = 0
	s.activateLocked()
	s.mu.Unlock()
}

// Rebind swaps in a new sequence. The current item stays on screen if it
// is still present; otherwise the index is kept when in range and wraps
// to 0 when not. The timer restarts for the resulting item.
func (s *Scheduler) Rebind(items []models.MarketingMedia) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	var currentID string
	if s.index < len(s.items) {
		currentID = s.items[s.index].ID
	}

	s.items = playable(items)
	s.index = rebindIndex(s.items, currentID, s.index)
	s.activateLocked()
}

// playable copies the items that can be timed.
func playable(items []models.MarketingMedia) []models.MarketingMedia {
	out := make([]models.MarketingMedia, 0, len(items))
	for _, m := range items {
		if m.Duration > 0 {
			out = append(out, m)
		}
	}
	return out
}

func rebindIndex(items []models.MarketingMedia, currentID string, index int) int {
	for i, m := range items {
		if m.ID == currentID {
			return i
		}
	}
	if index < len(items) {
		return index
	}
	return 0
}

// Stop cancels the pending timer. A stopped scheduler ignores Rebind.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.generation++
	s.timer.Stop()
	s.timer = nil
}

// Current returns the visible item, if any.
func (s *Scheduler) Current() (models.MarketingMedia, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return models.MarketingMedia{}, 0, false
	}
	return s.items[s.index], s.index, true
}

// activateLocked renders items[index] and arms its timer. Must hold mu.
func (s *Scheduler) activateLocked() {
	s.generation++
	s.timer.Stop()
	s.timer = nil

	if len(s.items) == 0 {
		s.index = 0
		s.renderer.Clear()
		return
	}

	item := s.items[s.index]
	s.renderer.Render(item)

	gen := s.generation
	s.timer = s.clock.AfterFunc(item.DisplayDuration(), func() {
		s.advance(gen)
	})
}

func (s *Scheduler) advance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || !s.running || len(s.items) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.items)
	s.metrics.PlaylistRotated()
	s.activateLocked()
}

// Run starts from the source's playlist and rebinds after every media
// change until ctx is done.
func (s *Scheduler) Run(ctx context.Context, src Source) error {
	sub := src.Subscribe("playlist", 0)
	defer sub.Close()
	defer s.Stop()

	s.Start(src.Playlist())
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-sub.Changes():
			if !ok {
				return nil
			}
			if c.Type.IsMediaChange() {
				items := src.Playlist()
				s.l.Debug(ctx, "playlist.Scheduler.Run: rebinding", "items", len(items), "revision", c.Revision)
				s.Rebind(items)
			}
		case <-sub.Dropped():
			s.l.Warn(ctx, "playlist.Scheduler.Run: changes dropped, rebinding")
			s.Rebind(src.Playlist())
		}
	}
}
