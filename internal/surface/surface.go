// Package surface opens the external surfaces the export strategies hand off
// to: the browser for LinkedIn deep links and the OS dialer for calls. All
// opens are fire-and-forget; the surface's own success or failure is not
// observable from here.
package surface

import (
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// MessagingURL is the LinkedIn direct-message surface a manual export pastes
// into.
const MessagingURL = "https://www.linkedin.com/messaging/"

const shareComposerBase = "https://www.linkedin.com/feed/?shareActive=true&text="

// startCommand launches the opener process. Package-level to allow mocking in
// tests.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener launches URLs with the platform's default handler.
type Opener struct {
	log *zap.Logger
}

// NewOpener creates an Opener.
func NewOpener(log *zap.Logger) *Opener {
	return &Opener{log: log}
}

// OpenURL hands the URL to the OS. The spawned process is not waited on.
func (o *Opener) OpenURL(target string) error {
	o.log.Debug("opening external surface", zap.String("url", target))
	switch runtime.GOOS {
	case "windows":
		return startCommand("cmd", "/c", "start", target)
	case "darwin":
		return startCommand("open", target)
	default:
		return startCommand("xdg-open", target)
	}
}

// ShareComposerURL builds a pre-filled LinkedIn feed share composer link.
func ShareComposerURL(text string) string {
	return shareComposerBase + url.QueryEscape(text)
}

// DialURL builds the OS-level dial link for a phone number.
func DialURL(phone string) string {
	return "tel:" + strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}
