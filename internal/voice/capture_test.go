package voice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingRecognizer struct {
	started chan struct{}
}

func (b blockingRecognizer) Recognize(ctx context.Context) (string, error) {
	close(b.started)
	<-ctx.Done()
	return "", ctx.Err()
}

type failingRecognizer struct{}

func (failingRecognizer) Recognize(context.Context) (string, error) {
	return "", errors.New("network")
}

func TestCapture_Lowercases(t *testing.T) {
	c := NewCapturer()
	text, err := c.Capture(context.Background(), TranscriptRecognizer("  Sold Three SUGAR "))
	require.NoError(t, err)
	assert.Equal(t, "sold three sugar", text)
	assert.False(t, c.Active())
}

func TestCapture_Unsupported(t *testing.T) {
	_, err := NewCapturer().Capture(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCapture_EmptyUtterance(t *testing.T) {
	_, err := NewCapturer().Capture(context.Background(), TranscriptRecognizer("   "))
	assert.ErrorIs(t, err, ErrNoSpeech)
}

func TestCapture_RecognizerError(t *testing.T) {
	_, err := NewCapturer().Capture(context.Background(), failingRecognizer{})
	assert.ErrorIs(t, err, ErrRecognition)
}

func TestCapture_ClientReportedError(t *testing.T) {
	_, err := NewCapturer().Capture(context.Background(), FailedRecognizer("no-speech"))
	assert.ErrorIs(t, err, ErrRecognition)
	assert.Contains(t, err.Error(), "no-speech")
}

func TestCapture_ExclusiveAndClose(t *testing.T) {
	c := NewCapturer()
	rec := blockingRecognizer{started: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := c.Capture(context.Background(), rec)
		done <- err
	}()

	select {
	case <-rec.started:
	case <-time.After(time.Second):
		t.Fatal("recognizer did not start")
	}

	_, err := c.Capture(context.Background(), TranscriptRecognizer("sold sugar"))
	assert.ErrorIs(t, err, ErrCaptureBusy)

	c.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrRecognition)
	case <-time.After(time.Second):
		t.Fatal("capture was not torn down by Close")
	}

	_, err = c.Capture(context.Background(), TranscriptRecognizer("sold sugar"))
	assert.ErrorIs(t, err, ErrCaptureClosed)
}
