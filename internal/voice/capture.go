package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrUnsupported   = errors.New("speech recognition not supported")
	ErrCaptureBusy   = errors.New("a voice capture is already in progress")
	ErrRecognition   = errors.New("speech recognition error")
	ErrNoSpeech      = errors.New("no speech recognized")
	ErrCaptureClosed = errors.New("voice capture closed")
)

// Recognizer produces the text of exactly one utterance.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// TranscriptRecognizer serves an utterance that was already recognized on the
// client, which is where the browser's speech engine runs.
type TranscriptRecognizer string

func (t TranscriptRecognizer) Recognize(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(t), nil
}

// FailedRecognizer reports a recognition error raised on the client,
// such as "no-speech" or "network".
type FailedRecognizer string

func (f FailedRecognizer) Recognize(ctx context.Context) (string, error) {
	return "", errors.New(string(f))
}

// Capturer allows one recognition at a time. Close tears down a running
// capture and rejects later ones.
type Capturer struct {
	mu     sync.Mutex
	active bool
	closed bool
	cancel context.CancelFunc
}

func NewCapturer() *Capturer {
	return &Capturer{}
}

// Capture runs rec once and returns the lowercase, trimmed utterance.
func (c *Capturer) Capture(ctx context.Context, rec Recognizer) (string, error) {
	if rec == nil {
		return "", ErrUnsupported
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrCaptureClosed
	}
	if c.active {
		c.mu.Unlock()
		return "", ErrCaptureBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	c.active = true
	c.cancel = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.active = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
	}()

	text, err := rec.Recognize(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// Active reports whether a capture is running.
func (c *Capturer) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Capturer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
}
