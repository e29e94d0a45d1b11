package audio

import (
	"fmt"
	"os/exec"
	"time"
)

// Player replays a recorded session with ffplay. It implements the
// editor core's playback collaborator: Seek receives offsets relative
// to the session's anchor time.
type Player struct {
	AudioPath string

	cmd *exec.Cmd
}

func NewPlayer(audioPath string) *Player {
	return &Player{AudioPath: audioPath}
}

func (p *Player) CheckFFplay() error {
	if _, err := exec.LookPath("ffplay"); err != nil {
		return fmt.Errorf("ffplay not found. Install with: brew install ffmpeg")
	}
	return nil
}

// Seek restarts playback at the given offset into the recording.
// Negative offsets clamp to the start.
func (p *Player) Seek(rel time.Duration) error {
	if p.AudioPath == "" {
		return nil
	}
	p.stop()
	if rel < 0 {
		rel = 0
	}
	cmd := exec.Command("ffplay",
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-ss", fmt.Sprintf("%.3f", rel.Seconds()),
		p.AudioPath,
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	p.cmd = cmd
	go cmd.Wait()
	return nil
}

// Stop halts any running playback.
func (p *Player) Stop() {
	p.stop()
}

func (p *Player) stop() {
	if p.cmd == nil {
		return
	}
	_ = p.cmd.Process.Kill()
	p.cmd = nil
}
