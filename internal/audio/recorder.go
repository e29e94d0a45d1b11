package audio

import (
	"fmt"
	"os"
	"os/exec"
)

// Recorder manages an ffmpeg capture of the default input device. It is
// a collaborator of the editor core: the core never touches audio, it
// only receives the anchor time at which the recording started.
type Recorder struct {
	// InputFormat and InputDevice select the ffmpeg capture source,
	// e.g. avfoundation/":default" on macOS or pulse/"default" on Linux.
	InputFormat string
	InputDevice string

	cmd *exec.Cmd
}

func NewRecorder(inputFormat, inputDevice string) *Recorder {
	return &Recorder{InputFormat: inputFormat, InputDevice: inputDevice}
}

func (r *Recorder) CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found. Install with: brew install ffmpeg")
	}
	return nil
}

// Start begins recording to outputPath in the background.
func (r *Recorder) Start(outputPath string) error {
	if r.cmd != nil {
		return fmt.Errorf("a recording is already in progress")
	}
	cmd := exec.Command("ffmpeg",
		"-f", r.InputFormat,
		"-i", r.InputDevice,
		"-ac", "1",
		"-ar", "16000",
		"-y",
		outputPath,
	)

	// Log stderr for diagnostics
	logPath := outputPath + ".ffmpeg.log"
	if logFile, err := os.Create(logPath); err == nil {
		cmd.Stderr = logFile
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting recording: %w", err)
	}
	r.cmd = cmd
	return nil
}

// Recording reports whether a capture is running.
func (r *Recorder) Recording() bool {
	return r.cmd != nil
}

// Stop interrupts ffmpeg and waits for it to flush the file.
func (r *Recorder) Stop() error {
	if r.cmd == nil {
		return nil
	}
	cmd := r.cmd
	r.cmd = nil
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}
	_ = cmd.Wait()
	return nil
}
