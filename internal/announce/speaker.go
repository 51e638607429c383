package announce

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

// Speaker is the external speech capability. Implementations may fail;
// the dispatcher only logs the error.
type Speaker interface {
	Speak(ctx context.Context, text, locale string) error
}

type SpeakerFunc func(ctx context.Context, text, locale string) error

func (f SpeakerFunc) Speak(ctx context.Context, text, locale string) error {
	return f(ctx, text, locale)
}

type logSpeaker struct {
	l logger.Logger
}

// NewLogSpeaker writes utterances to the log instead of an audio device.
func NewLogSpeaker(l logger.Logger) Speaker {
	return &logSpeaker{l: l}
}

func (s *logSpeaker) Speak(ctx context.Context, text, locale string) error {
	s.l.Info(ctx, "announce.speak", "text", text, "locale", locale)
	return nil
}

// espeak-ng speaks at 175 words per minute by default.
const baseWordsPerMinute = 175

var voices = map[string]string{
	"pt-BR": "pt-br",
	"en-US": "en-us",
	"es-ES": "es",
}

type commandSpeaker struct {
	path string
	rate float64
}

// NewCommandSpeaker runs an espeak-compatible binary for each utterance.
// rate scales the default speed, 1.0 being normal.
func NewCommandSpeaker(path string, rate float64) Speaker {
	if rate <= 0 {
		rate = 1
	}
	return &commandSpeaker{path: path, rate: rate}
}

func (s *commandSpeaker) Speak(ctx context.Context, text, locale string) error {
	args := s.args(text, locale)
	out, err := exec.CommandContext(ctx, s.path, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("announce.commandSpeaker.Speak: %s: %w: %s", s.path, err, out)
	}
	return nil
}

func (s *commandSpeaker) args(text, locale string) []string {
	voice, ok := voices[locale]
	if !ok {
		voice = voices[DefaultLocale]
	}
	wpm := int(baseWordsPerMinute * s.rate)
	return []string{"-v", voice, "-s", strconv.Itoa(wpm), text}
}
