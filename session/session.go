// Package session owns the recording toggle state machine: one armed
// session at a time, a background listener goroutine that calibrates,
// segments utterances, and feeds them to the recognizer.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zbango/mia/audio"
	"github.com/zbango/mia/clipboard"
	"github.com/zbango/mia/encoder"
	"github.com/zbango/mia/log"
	"github.com/zbango/mia/messages"
	"github.com/zbango/mia/recognizer"
)

// EventSink receives UI-visible session events. Methods are invoked from
// the listener goroutine; implementations must hand off to the UI thread
// themselves (the GUI sink funnels everything through the Fyne queue).
type EventSink interface {
	RecordingStarted()
	RecordingStopped()
	Notify(msg string, d time.Duration)
}

// NoopSink keeps the controller usable before the UI is wired.
type NoopSink struct{}

func (NoopSink) RecordingStarted()                  {}
func (NoopSink) RecordingStopped()                  {}
func (NoopSink) Notify(msg string, d time.Duration) {}

const (
	GreetingDuration = 1500 * time.Millisecond
	AckDuration      = 1500 * time.Millisecond
	NoSpeechDuration = 2000 * time.Millisecond
	ServiceDuration  = 3000 * time.Millisecond

	noSpeechNotice = "Sorry, I couldn't understand you. Could you repeat that?"
	serviceNotice  = "Sorry, I'm having a connection problem. Please try again."
)

type Config struct {
	Recognizer recognizer.Recognizer
	Capture    audio.CaptureDevice
	Sink       EventSink
	Catalog    *messages.Catalog

	// WriteClipboard defaults to clipboard.Copy.
	WriteClipboard func(text string) error

	// Segmentation tunables; zero values take the defaults below.
	CalibrateDur time.Duration // ambient-noise sampling window
	EnergyRatio  float64       // threshold = peak ambient RMS * ratio
	MinThreshold float64       // threshold floor, normalized RMS
	PauseDur     time.Duration // trailing quiet that ends an utterance
	MinPhraseDur time.Duration // shorter speech bursts are discarded
	MaxPhraseDur time.Duration // hard cap on a single utterance
}

func (c *Config) applyDefaults() {
	if c.Sink == nil {
		c.Sink = NoopSink{}
	}
	if c.WriteClipboard == nil {
		c.WriteClipboard = clipboard.Copy
	}
	if c.CalibrateDur == 0 {
		c.CalibrateDur = time.Second
	}
	if c.EnergyRatio == 0 {
		c.EnergyRatio = 1.5
	}
	if c.MinThreshold == 0 {
		c.MinThreshold = 0.01
	}
	if c.PauseDur == 0 {
		c.PauseDur = 800 * time.Millisecond
	}
	if c.MinPhraseDur == 0 {
		c.MinPhraseDur = 300 * time.Millisecond
	}
	if c.MaxPhraseDur == 0 {
		c.MaxPhraseDur = 15 * time.Second
	}
}

// Controller flips between armed and idle. Effects from a superseded
// session carry a stale generation and are dropped, so a callback racing
// a disarm can never touch the clipboard or the UI.
type Controller struct {
	cfg Config

	mu        sync.Mutex
	recording bool
	gen       uint64
	text      string
	cancel    context.CancelFunc
	count     int
	done      chan struct{} // closed when the current listener has cleaned up
}

func NewController(cfg Config) *Controller {
	cfg.applyDefaults()
	return &Controller{cfg: cfg}
}

func (c *Controller) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording
}

// Text returns the text accumulated by the current or last session.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// RecognizedCount reports utterances recognized over the process lifetime.
func (c *Controller) RecognizedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Toggle arms an idle controller or disarms an armed one. Disarming
// cancels the listener without waiting for in-flight audio processing.
func (c *Controller) Toggle() {
	c.mu.Lock()
	if c.recording {
		c.recording = false
		c.gen++
		cancel := c.cancel
		c.cancel = nil
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		log.Info("session_disarmed")
		c.cfg.Sink.RecordingStopped()
		return
	}

	c.recording = true
	c.gen++
	gen := c.gen
	c.text = ""
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	prev := c.done
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	log.SessionStart(c.cfg.Recognizer.GetLanguage(), c.cfg.Capture.DeviceName())
	c.cfg.Sink.RecordingStarted()
	go func() {
		defer close(done)
		// The capture device is shared across sessions; wait until the
		// superseded listener has released it.
		if prev != nil {
			<-prev
		}
		c.listen(ctx, gen)
	}()
}

// current reports whether gen still names the active session.
func (c *Controller) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording && c.gen == gen
}

// disarm ends the session from inside the listener after a successful
// one-shot recognition. Returns false when a toggle got there first.
func (c *Controller) disarm(gen uint64) bool {
	c.mu.Lock()
	if !c.recording || c.gen != gen {
		c.mu.Unlock()
		return false
	}
	c.recording = false
	c.gen++
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.cfg.Sink.RecordingStopped()
	return true
}

func (c *Controller) appendText(gen uint64, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.recording || c.gen != gen {
		return false
	}
	c.text += text + " "
	c.count++
	return true
}

// listen runs on its own goroutine for the lifetime of one armed session.
func (c *Controller) listen(ctx context.Context, gen uint64) {
	capture := c.cfg.Capture
	frames := make(chan []byte, 64)
	capture.SetCallback(func(data []byte, _ uint32) {
		if len(data) == 0 {
			return
		}
		pcm := make([]byte, len(data))
		copy(pcm, data)
		select {
		case frames <- pcm:
		default: // listener fell behind, drop the chunk
		}
	})
	if err := capture.Start(); err != nil {
		capture.ClearCallback()
		log.Errorf("capture start error: %v", err)
		c.cfg.Sink.Notify(serviceNotice, ServiceDuration)
		c.disarm(gen)
		return
	}
	defer func() {
		capture.Stop()
		capture.ClearCallback()
	}()

	threshold, ok := c.calibrate(ctx, frames)
	if !ok {
		return
	}

	if c.current(gen) {
		c.cfg.Sink.Notify(c.cfg.Catalog.Greeting(), GreetingDuration)
	}

	seg := newSegmenter(threshold, c.cfg.PauseDur, c.cfg.MinPhraseDur, c.cfg.MaxPhraseDur)
	for {
		select {
		case <-ctx.Done():
			return
		case chunk := <-frames:
			utterance, ok := seg.Feed(chunk)
			if !ok {
				continue
			}
			if done := c.process(ctx, gen, utterance); done {
				return
			}
			seg.Reset()
		}
	}
}

// calibrate measures the ambient-noise floor over the configured window
// and derives the speech energy threshold from its peak.
func (c *Controller) calibrate(ctx context.Context, frames <-chan []byte) (float64, bool) {
	start := time.Now()
	need := int(float64(encoder.SampleRate) * c.cfg.CalibrateDur.Seconds())
	var seen int
	var peak float64
	for seen < need {
		select {
		case <-ctx.Done():
			return 0, false
		case chunk := <-frames:
			seen += len(chunk) / 2
			if rms := chunkRMS(chunk); rms > peak {
				peak = rms
			}
		}
	}
	threshold := peak * c.cfg.EnergyRatio
	if threshold < c.cfg.MinThreshold {
		threshold = c.cfg.MinThreshold
	}
	log.Calibration(threshold, time.Since(start))
	return threshold, true
}

// process handles one segmented utterance. Returns true when the session
// finished (successful one-shot recognition or cancellation).
func (c *Controller) process(ctx context.Context, gen uint64, utterance []byte) bool {
	flacData, err := encoder.EncodeUtterance(utterance)
	if err != nil {
		log.Errorf("utterance encode error: %v", err)
		return false
	}

	audioS := float64(len(utterance)/2) / float64(encoder.SampleRate)
	lang := c.cfg.Recognizer.GetLanguage()
	started := time.Now()
	res, err := c.cfg.Recognizer.Recognize(ctx, flacData)
	totalMs := float64(time.Since(started).Milliseconds())

	// A disarm may have raced the recognition round trip; stale results
	// must not reach the clipboard or the UI.
	if !c.current(gen) {
		return true
	}

	switch {
	case err == nil:
		log.Recognition(lang, "ok", audioS, res.Confidence, totalMs)
		log.TranscriptionText(res.Text)
		if !c.appendText(gen, res.Text) {
			return true
		}
		if werr := c.cfg.WriteClipboard(res.Text + " "); werr != nil {
			log.Errorf("clipboard write error: %v", werr)
		}
		c.cfg.Sink.Notify(c.cfg.Catalog.Acknowledgment(), AckDuration)
		c.disarm(gen)
		return true

	case errors.Is(err, recognizer.ErrNoSpeech):
		log.Recognition(lang, "no_speech", audioS, 0, totalMs)
		if werr := c.cfg.WriteClipboard(""); werr != nil {
			log.Errorf("clipboard write error: %v", werr)
		}
		c.cfg.Sink.Notify(noSpeechNotice, NoSpeechDuration)
		return false

	default:
		log.Errorf("recognition service error: %v", err)
		log.Recognition(lang, "service_error", audioS, 0, totalMs)
		c.cfg.Sink.Notify(serviceNotice, ServiceDuration)
		return false
	}
}
