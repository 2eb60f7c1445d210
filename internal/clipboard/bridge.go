// Package clipboard implements the best-effort copy bridge used by the
// paste-based export strategies.
package clipboard

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Tier functions are package-level variables to allow mocking in tests.
var (
	writeSystem = clipboard.WriteAll
	openTTY     = func() (io.WriteCloser, error) {
		return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	}
)

// Copy places text on the clipboard and reports success. It tries the system
// clipboard first and falls back to an OSC 52 escape sequence written to the
// controlling terminal. Empty input always fails, and no branch panics or
// returns an error; callers decide whether a failure is worth telling the
// user about.
func Copy(text string) bool {
	if text == "" {
		return false
	}
	if err := writeSystem(text); err == nil {
		return true
	}
	return copyOSC52(text)
}

// copyOSC52 asks the terminal emulator to set the clipboard. The tty handle
// is the only resource touched and is closed on every exit path, including
// panics from a misbehaving writer.
func copyOSC52(text string) (ok bool) {
	tty, err := openTTY()
	if err != nil {
		return false
	}
	defer func() {
		_ = tty.Close()
		if r := recover(); r != nil {
			ok = false
		}
	}()

	if _, err := osc52.New(text).WriteTo(tty); err != nil {
		return false
	}
	return true
}
