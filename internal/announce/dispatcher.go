package announce

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vogiaan1904/branchqueue/internal/metrics"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/pkg/clock"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

type Kind string

const (
	KindNewCall Kind = "new_call"
	KindRecall  Kind = "recall"
)

type Announcement struct {
	Kind   Kind           `json:"kind"`
	Ticket *models.Ticket `json:"ticket"`
	Text   string         `json:"text"`
	Locale string         `json:"locale"`
	At     time.Time      `json:"at"`
}

// Notifier receives announcement and flash signals. Calls must not block.
type Notifier interface {
	NotifyAnnouncement(a Announcement)
	NotifyFlash(on bool)
}

// Source is the queue state the dispatcher observes.
type Source interface {
	LastCalledTicket() (*models.Ticket, bool)
	Subscribe(name string, buffer int) *queue.Subscription
}

type Config struct {
	Locale        string
	FlashDuration time.Duration
	RecallWindow  time.Duration
	SpeechTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Locale:        DefaultLocale,
		FlashDuration: 3 * time.Second,
		RecallWindow:  time.Second,
		SpeechTimeout: 10 * time.Second,
	}
}

type Option func(*Dispatcher)

func WithClock(c clock.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithNotifier attaches a display. Without one only speech is emitted.
func WithNotifier(n Notifier) Option {
	return func(d *Dispatcher) {
		d.notifier = n
	}
}

// Dispatcher turns changes of the last called ticket into announcements.
// It keeps only the last announced id and calledAt, so every observation
// reads current state and dropped change events cannot cause misses.
type Dispatcher struct {
	mu           sync.Mutex
	lastID       string
	lastCalledAt time.Time
	flashing     bool
	flashGen     uint64
	flashTimer   *clock.Timer

	src      Source
	speaker  Speaker
	notifier Notifier
	cfg      Config
	clock    clock.Clock
	metrics  *metrics.Metrics
	l        logger.Logger

	speech sync.WaitGroup
}

func NewDispatcher(src Source, speaker Speaker, cfg Config, l logger.Logger, opts ...Option) *Dispatcher {
	def := DefaultConfig()
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.FlashDuration <= 0 {
		cfg.FlashDuration = def.FlashDuration
	}
	if cfg.RecallWindow <= 0 {
		cfg.RecallWindow = def.RecallWindow
	}
	if cfg.SpeechTimeout <= 0 {
		cfg.SpeechTimeout = def.SpeechTimeout
	}

	d := &Dispatcher{
		src:     src,
		speaker: speaker,
		cfg:     cfg,
		clock:   clock.Real(),
		l:       l,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run observes once, then again after every ticket change or lost change,
// until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	sub := d.src.Subscribe("announce", 0)
	defer sub.Close()
	defer d.stopFlash()

	d.Observe(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-sub.Changes():
			if !ok {
				return nil
			}
			if c.Type.IsTicketChange() {
				d.Observe(ctx)
			}
		case <-sub.Dropped():
			d.Observe(ctx)
		}
	}
}

// Observe compares the current last called ticket against what was last
// announced and emits at most one announcement.
func (d *Dispatcher) Observe(ctx context.Context) (Announcement, bool) {
	t, ok := d.src.LastCalledTicket()
	if !ok || t.CalledAt == nil {
		return Announcement{}, false
	}
	now := d.clock.Now()
	calledAt := *t.CalledAt

	d.mu.Lock()
	var kind Kind
	switch {
	case t.ID != d.lastID:
		// A ticket older than the last announcement resurfaces when the
		// newer one is finished; that is not a call. Track it anyway so its
		// next recall is classified as one.
		if d.lastID != "" && calledAt.Before(d.lastCalledAt) {
			d.lastID = t.ID
			d.lastCalledAt = calledAt
			d.mu.Unlock()
			return Announcement{}, false
		}
		kind = KindNewCall
		d.lastID = t.ID
		d.flashing = true
		d.flashGen++
	case calledAt.After(d.lastCalledAt) && now.Sub(calledAt) < d.cfg.RecallWindow:
		kind = KindRecall
	default:
		d.mu.Unlock()
		return Announcement{}, false
	}
	d.lastCalledAt = calledAt
	gen := d.flashGen
	d.mu.Unlock()

	a := Announcement{
		Kind:   kind,
		Ticket: t,
		Text:   Utterance(d.cfg.Locale, t.Number, t.Counter),
		Locale: d.cfg.Locale,
		At:     now,
	}

	if kind == KindNewCall {
		d.startFlash(gen)
	}
	if d.notifier != nil {
		d.notifier.NotifyAnnouncement(a)
	}
	d.metrics.Announcement(string(kind))
	d.l.Info(ctx, "announce.Dispatcher.Observe", "kind", kind, "ticket", t.Number, "counter", t.Counter)

	d.speak(ctx, a)
	return a, true
}

func (d *Dispatcher) startFlash(gen uint64) {
	if d.notifier != nil {
		d.notifier.NotifyFlash(true)
	}

	timer := d.clock.AfterFunc(d.cfg.FlashDuration, func() {
		d.endFlash(gen)
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.flashGen {
		timer.Stop()
		return
	}
	d.flashTimer.Stop()
	d.flashTimer = timer
}

// endFlash turns the flash off unless a newer call restarted it.
func (d *Dispatcher) endFlash(gen uint64) {
	d.mu.Lock()
	if gen != d.flashGen || !d.flashing {
		d.mu.Unlock()
		return
	}
	d.flashing = false
	d.flashTimer = nil
	d.mu.Unlock()

	if d.notifier != nil {
		d.notifier.NotifyFlash(false)
	}
}

func (d *Dispatcher) stopFlash() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flashTimer.Stop()
	d.flashTimer = nil
	d.flashing = false
	d.flashGen++
}

// speak hands the utterance to the speaker without waiting for it.
func (d *Dispatcher) speak(ctx context.Context, a Announcement) {
	d.speech.Add(1)
	go func() {
		defer d.speech.Done()

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.SpeechTimeout)
		defer cancel()

		if err := d.safeSpeak(sctx, a); err != nil {
			d.metrics.AnnouncementFailed()
			d.l.Warnf(sctx, "announce.Dispatcher.speak: %v", err)
		}
	}()
}

func (d *Dispatcher) safeSpeak(ctx context.Context, a Announcement) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("speaker panic: %v", r)
		}
	}()
	return d.speaker.Speak(ctx, a.Text, a.Locale)
}

func (d *Dispatcher) Flashing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flashing
}

// Wait blocks until in-flight speech calls return.
func (d *Dispatcher) Wait() {
	d.speech.Wait()
}
