package audio

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
)

// playerCandidates are tried in order; the first binary found on PATH wins.
var playerCandidates = []struct {
	name string
	args []string
}{
	{"mpg123", []string{"-q"}},
	{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{"mpv", []string{"--no-video", "--really-quiet"}},
	{"afplay", nil},
}

// CommandPlayer plays audio by writing it to a temporary file and running a
// system audio player on it.
type CommandPlayer struct {
	logger *log.Logger
}

func NewCommandPlayer(logger *log.Logger) *CommandPlayer {
	return &CommandPlayer{logger: logger}
}

func (p *CommandPlayer) NewHandle(data []byte) (Handle, error) {
	tmpFile, err := os.CreateTemp("", "sayso_*.mp3")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	return &commandHandle{path: tmpFile.Name(), logger: p.logger}, nil
}

type commandHandle struct {
	path   string
	logger *log.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	stopped bool

	releaseOnce sync.Once
}

func (h *commandHandle) Play(onEnded func(), onError func(error)) error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil
	}
	name, args, err := playerCommand()
	if err != nil {
		h.mu.Unlock()
		h.release()
		return err
	}
	cmd := exec.Command(name, append(args, h.path)...)
	if err := cmd.Start(); err != nil {
		h.mu.Unlock()
		h.release()
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	h.cmd = cmd
	h.mu.Unlock()

	go func() {
		waitErr := cmd.Wait()

		h.mu.Lock()
		stopped := h.stopped
		h.mu.Unlock()
		h.release()

		if stopped {
			return
		}
		if waitErr != nil {
			onError(waitErr)
			return
		}
		onEnded()
	}()

	return nil
}

func (h *commandHandle) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	cmd := h.cmd
	h.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		// The Wait goroutine releases the temp file once the process dies.
		_ = cmd.Process.Kill()
		return
	}
	h.release()
}

func (h *commandHandle) release() {
	h.releaseOnce.Do(func() {
		if err := os.Remove(h.path); err != nil && h.logger != nil {
			h.logger.Printf("audio: failed to remove %s: %v", h.path, err)
		}
	})
}

func playerCommand() (string, []string, error) {
	for _, c := range playerCandidates {
		if _, err := exec.LookPath(c.name); err == nil {
			return c.name, c.args, nil
		}
	}
	return "", nil, fmt.Errorf("no audio player found on PATH (tried mpg123, ffplay, mpv, afplay)")
}
