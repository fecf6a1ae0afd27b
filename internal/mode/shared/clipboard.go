// Package shared provides common utilities shared between mode controllers.
package shared

import (
	"encoding/base64"
	"os"
	"os/exec"
	"runtime"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard implements Clipboard using OSC 52 escape sequences in
// remote or multiplexed sessions and the platform's copy tool otherwise.
type SystemClipboard struct{}

// MockClipboard records copied text for testing.
type MockClipboard struct {
	Copied []string
}

// Copy records the text and succeeds.
func (c *MockClipboard) Copy(text string) error {
	c.Copied = append(c.Copied, text)
	return nil
}

// Copy puts text on the clipboard. Over SSH, tmux or screen the local
// copy tools reach the wrong machine's clipboard, so the text travels as
// an OSC 52 sequence for the user's own terminal to catch.
func (SystemClipboard) Copy(text string) error {
	if shouldUseOSC52() {
		return copyViaOSC52(text)
	}

	cmd := copyCommand()

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	if _, err := pipe.Write([]byte(text)); err != nil {
		return err
	}

	if err := pipe.Close(); err != nil {
		return err
	}

	return cmd.Wait()
}

func copyCommand() *exec.Cmd {
	if runtime.GOOS == "darwin" {
		return exec.Command("pbcopy")
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return exec.Command("wl-copy")
	}
	return exec.Command("xclip", "-selection", "clipboard")
}

// shouldUseOSC52 reports whether the session is remote or multiplexed.
func shouldUseOSC52() bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// osc52Sequence builds the OSC 52 clipboard sequence for text. Under
// tmux the sequence needs DCS passthrough wrapping to reach the outer
// terminal.
func osc52Sequence(text string, tmux bool) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	seq := "\x1b]52;c;" + encoded + "\x07"
	if tmux {
		return "\x1bPtmux;\x1b" + seq + "\x1b\\"
	}
	return seq
}

func copyViaOSC52(text string) error {
	seq := osc52Sequence(text, os.Getenv("TMUX") != "")

	// Write straight to the terminal; the sequence is consumed, not shown.
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		_, werr := os.Stdout.WriteString(seq)
		return werr
	}
	defer tty.Close()

	_, err = tty.WriteString(seq)
	return err
}
