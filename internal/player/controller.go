package player

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mkolarik/sayso/internal/audio"
	"github.com/mkolarik/sayso/internal/language"
	"github.com/mkolarik/sayso/internal/remote"
	"github.com/mkolarik/sayso/internal/tts"
)

// Delays groups the controller's single-shot timer durations. Zero fields
// fall back to DefaultDelays; tests shorten them.
type Delays struct {
	InitialPlay time.Duration // share-URL auto-play, lets startup settle
	RemotePlay  time.Duration // remote-triggered auto-play
	Debounce    time.Duration // text/language edits while auto-play is on
	CopiedReset time.Duration // "copied" indicator revert
}

var DefaultDelays = Delays{
	InitialPlay: 500 * time.Millisecond,
	RemotePlay:  300 * time.Millisecond,
	Debounce:    time.Second,
	CopiedReset: 2 * time.Second,
}

// State is a snapshot of the controller's UI-facing state.
type State struct {
	Text     string
	Language string
	AutoPlay bool
	Playing  bool
	Err      string
	Copied   bool
}

// Options configures a Controller.
type Options struct {
	Synthesizer tts.Client
	Audio       audio.Player
	Logger      *log.Logger
	ShareBase   string              // base URL for ShareURL
	Copy        func(string) error  // clipboard; nil disables CopyShareURL
	Delays      Delays
	OnChange    func(State) // invoked after every state change, off the lock
}

// Controller owns playback and UI state. Every entry point is safe for
// concurrent use; UI input, timers and remote messages all funnel through
// the same mutex.
//
// Playback cycles carry a generation number. Only the cycle matching the
// current generation may install its audio handle, so a request that is
// superseded while its fetch is still in flight resolves harmlessly: it
// releases its own handle and leaves the winner alone.
type Controller struct {
	synth     tts.Client
	audio     audio.Player
	logger    *log.Logger
	shareBase string
	copyFn    func(string) error
	delays    Delays
	onChange  func(State)

	mu       sync.Mutex
	text     string
	lang     string
	autoPlay bool
	playing  bool
	errMsg   string
	copied   bool

	gen    uint64
	active audio.Handle

	playTimer   *time.Timer // pending delayed/debounced playback
	copiedTimer *time.Timer

	detach chan struct{}
	wg     sync.WaitGroup
}

func New(opts Options) *Controller {
	d := opts.Delays
	if d.InitialPlay == 0 {
		d.InitialPlay = DefaultDelays.InitialPlay
	}
	if d.RemotePlay == 0 {
		d.RemotePlay = DefaultDelays.RemotePlay
	}
	if d.Debounce == 0 {
		d.Debounce = DefaultDelays.Debounce
	}
	if d.CopiedReset == 0 {
		d.CopiedReset = DefaultDelays.CopiedReset
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Controller{
		synth:     opts.Synthesizer,
		audio:     opts.Audio,
		logger:    logger,
		shareBase: opts.ShareBase,
		copyFn:    opts.Copy,
		delays:    d,
		onChange:  opts.OnChange,
		lang:      language.Default,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Text:     c.text,
		Language: c.lang,
		AutoPlay: c.autoPlay,
		Playing:  c.playing,
		Err:      c.errMsg,
		Copied:   c.copied,
	}
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}

// ApplyShareURL seeds state from a share URL's text/lang/auto parameters.
// An unknown lang keeps the current language. auto="true" enables auto-play
// and, when the effective text is non-empty, schedules playback once the
// initial delay elapses.
func (c *Controller) ApplyShareURL(raw string) error {
	st, err := ParseShareURL(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if st.Text != "" {
		c.text = st.Text
	}
	if st.Language != "" {
		c.lang = st.Language
	}
	if st.AutoPlay {
		c.autoPlay = true
	}
	text, lang := c.text, c.lang
	schedule := st.AutoPlay && strings.TrimSpace(text) != ""
	c.mu.Unlock()

	if schedule {
		c.schedulePlay(c.delays.InitialPlay, text, lang)
	}
	c.notify()
	return nil
}

// SetText replaces the text. With auto-play on and non-empty text, playback
// is debounced: only the last edit inside the window fires.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	c.text = text
	auto := c.autoPlay
	lang := c.lang
	c.mu.Unlock()

	if auto && strings.TrimSpace(text) != "" {
		c.schedulePlay(c.delays.Debounce, text, lang)
	}
	c.notify()
}

// SetLanguage switches to a known language code and reports whether the
// code was accepted. Unknown codes leave the language unchanged.
func (c *Controller) SetLanguage(code string) bool {
	if !language.Known(code) {
		return false
	}

	c.mu.Lock()
	c.lang = code
	auto := c.autoPlay
	text := c.text
	c.mu.Unlock()

	if auto && strings.TrimSpace(text) != "" {
		c.schedulePlay(c.delays.Debounce, text, code)
	}
	c.notify()
	return true
}

// SetAutoPlay toggles the auto-play mode. Toggling alone does not schedule
// playback; the next text or language change does.
func (c *Controller) SetAutoPlay(on bool) {
	c.mu.Lock()
	c.autoPlay = on
	c.mu.Unlock()
	c.notify()
}

// schedulePlay arms the single pending-playback timer, replacing whatever
// was pending. Only the most recent timer ever fires.
func (c *Controller) schedulePlay(d time.Duration, text, lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playTimer != nil {
		c.playTimer.Stop()
	}
	c.playTimer = time.AfterFunc(d, func() {
		_ = c.Play(text, lang)
	})
}

// Play runs one playback cycle: synthesize, then swap the result into the
// active-handle slot. Empty overrides fall back to current state. The call
// blocks until playback has started (or failed); audio keeps playing in the
// background.
func (c *Controller) Play(textOverride, langOverride string) error {
	c.mu.Lock()
	text := textOverride
	if text == "" {
		text = c.text
	}
	lang := langOverride
	if lang == "" {
		lang = c.lang
	}

	if strings.TrimSpace(text) == "" {
		c.errMsg = string(ErrEmptyText)
		c.mu.Unlock()
		c.notify()
		return ErrEmptyText
	}

	c.gen++
	gen := c.gen
	c.playing = true
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()

	data, err := c.synth.Synthesize(context.Background(), text, lang)
	if err != nil {
		c.logger.Printf("player: synthesis failed: %v", err)
		c.finishCycle(gen, string(ErrGeneration))
		return ErrGeneration
	}

	handle, err := c.audio.NewHandle(data)
	if err != nil {
		c.logger.Printf("player: audio handle: %v", err)
		c.finishCycle(gen, string(ErrPlayback))
		return ErrPlayback
	}

	c.mu.Lock()
	if gen != c.gen {
		// Superseded while the fetch was in flight. The winner owns the
		// slot; this cycle releases its own audio and bows out.
		c.mu.Unlock()
		handle.Stop()
		return nil
	}
	prev := c.active
	c.active = handle
	c.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}

	err = handle.Play(
		func() { c.playbackEnded(handle) },
		func(perr error) { c.playbackFailed(handle, perr) },
	)
	if err != nil {
		c.logger.Printf("player: playback start failed: %v", err)
		c.mu.Lock()
		if c.active == handle {
			c.active = nil
		}
		c.mu.Unlock()
		handle.Stop()
		c.finishCycle(gen, string(ErrPlayback))
		return ErrPlayback
	}
	return nil
}

// finishCycle records a failed cycle's outcome unless a newer cycle has
// already taken over.
func (c *Controller) finishCycle(gen uint64, errMsg string) {
	c.mu.Lock()
	if gen == c.gen {
		c.playing = false
		c.errMsg = errMsg
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) playbackEnded(h audio.Handle) {
	c.mu.Lock()
	if c.active == h {
		c.active = nil
		c.playing = false
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) playbackFailed(h audio.Handle, err error) {
	c.logger.Printf("player: playback failed: %v", err)
	c.mu.Lock()
	if c.active == h {
		c.active = nil
		c.playing = false
		c.errMsg = string(ErrPlayback)
	}
	c.mu.Unlock()
	c.notify()
}

// Stop halts any current playback and invalidates in-flight requests
// without starting a new cycle.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.gen++
	h := c.active
	c.active = nil
	c.playing = false
	c.mu.Unlock()

	if h != nil {
		h.Stop()
	}
	c.notify()
}

// Attach subscribes the controller to an inbound remote-control channel.
// Attaching while already attached is a no-op; call Detach first.
func (c *Controller) Attach(msgs <-chan remote.Message) {
	c.mu.Lock()
	if c.detach != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.detach = stop
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-stop:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handleRemote(msg)
			}
		}
	}()
}

// Detach stops consuming remote messages and waits for the consumer to
// exit. The controller can be re-attached afterwards.
func (c *Controller) Detach() {
	c.mu.Lock()
	stop := c.detach
	c.detach = nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	c.wg.Wait()
}

// handleRemote applies one TTS_UPDATE: a present text field (even empty)
// replaces the text, a known language replaces the language, and autoPlay
// with non-empty effective text schedules playback after the remote delay.
// Unknown or missing fields are ignored.
func (c *Controller) handleRemote(msg remote.Message) {
	if msg.Type != remote.TypeUpdate {
		return
	}

	c.mu.Lock()
	if msg.Text != nil {
		c.text = *msg.Text
	}
	if msg.Language != "" && language.Known(msg.Language) {
		c.lang = msg.Language
	}
	text, lang := c.text, c.lang
	schedule := msg.AutoPlay && strings.TrimSpace(text) != ""
	c.mu.Unlock()

	if schedule {
		c.schedulePlay(c.delays.RemotePlay, text, lang)
	}
	c.notify()
}

// ShareURL serializes the current text, language and auto-play flag into a
// URL that reconstructs this state elsewhere.
func (c *Controller) ShareURL() string {
	c.mu.Lock()
	st := ShareState{Text: c.text, Language: c.lang, AutoPlay: c.autoPlay}
	c.mu.Unlock()
	return BuildShareURL(c.shareBase, st)
}

// CopyShareURL puts the share URL on the clipboard and flips the transient
// copied indicator, which reverts on its own.
func (c *Controller) CopyShareURL() error {
	if c.copyFn == nil {
		return nil
	}
	if err := c.copyFn(c.ShareURL()); err != nil {
		return err
	}

	c.mu.Lock()
	c.copied = true
	if c.copiedTimer != nil {
		c.copiedTimer.Stop()
	}
	c.copiedTimer = time.AfterFunc(c.delays.CopiedReset, func() {
		c.mu.Lock()
		c.copied = false
		c.mu.Unlock()
		c.notify()
	})
	c.mu.Unlock()

	c.notify()
	return nil
}

// Close tears the controller down: detaches the remote consumer, cancels
// pending timers and stops any playback.
func (c *Controller) Close() {
	c.Detach()

	c.mu.Lock()
	if c.playTimer != nil {
		c.playTimer.Stop()
		c.playTimer = nil
	}
	if c.copiedTimer != nil {
		c.copiedTimer.Stop()
		c.copiedTimer = nil
	}
	c.mu.Unlock()

	c.Stop()
}
