// Package export coordinates dispatch of generated copy to the outbound
// channels: per-channel strategy resolution, a single-flight guarantee per
// export action, and error normalization into the notice stream.
package export

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/notify"
)

// Phase is the dispatcher's position in its lifecycle:
// Idle → MenuOpen → Selected → Dispatching → Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMenuOpen
	PhaseSelected
	PhaseDispatching
)

// State is the dispatcher's tagged state. Channel is meaningful only in the
// Selected and Dispatching phases, which rules out busy-without-channel by
// construction.
type State struct {
	Phase   Phase
	Channel model.ChannelKey
}

// Busy reports whether an export is in flight.
func (s State) Busy() bool {
	return s.Phase == PhaseDispatching
}

// ErrClipboard marks a paste-based export whose clipboard copy failed; the
// external surface is not opened in that case.
var ErrClipboard = errors.New("clipboard copy failed")

// OutcomeError is a backend-reported export failure whose message is shown to
// the user verbatim.
type OutcomeError struct {
	Message string
}

// Error implements the error interface.
func (e *OutcomeError) Error() string {
	return e.Message
}

const genericFailure = "Export failed. Please try again."

// backendClient is the slice of the API client the strategies use.
type backendClient interface {
	ExportLinkedIn(ctx context.Context, req api.LinkedInExportRequest) (*api.LinkedInExportResponse, error)
	ExportEmail(ctx context.Context, req api.EmailExportRequest) (*api.EmailExportResponse, error)
	ExportCall(ctx context.Context, req api.CallExportRequest) (*api.CallExportResponse, error)
}

// URLOpener opens fire-and-forget external surfaces.
type URLOpener interface {
	OpenURL(target string) error
}

// Notifier receives dispatch outcomes.
type Notifier interface {
	Push(kind notify.Kind, message string) string
}

// CopyFunc is the clipboard bridge entry point.
type CopyFunc func(text string) bool

// Dispatcher executes exactly one export strategy per confirmed action and
// reports a single success or error notice. At most one dispatch is in
// flight at a time; a confirm while busy is refused, never queued.
type Dispatcher struct {
	mu    sync.Mutex
	state State

	client   backendClient
	opener   URLOpener
	notices  Notifier
	copyText CopyFunc
	log      *zap.Logger
}

// NewDispatcher creates a Dispatcher in the Idle state.
func NewDispatcher(client backendClient, opener URLOpener, notices Notifier, copyText CopyFunc, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client:   client,
		opener:   opener,
		notices:  notices,
		copyText: copyText,
		log:      log,
	}
}

// State returns the current dispatcher state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// OpenMenu enters MenuOpen from Idle. Reports whether the menu opened.
func (d *Dispatcher) OpenMenu() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Phase != PhaseIdle {
		return false
	}
	d.state = State{Phase: PhaseMenuOpen}
	return true
}

// CloseMenu returns to Idle from MenuOpen, e.g. on an outside interaction.
func (d *Dispatcher) CloseMenu() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Phase == PhaseMenuOpen {
		d.state = State{}
	}
}

// Select picks a channel from the open menu, closing it. Reports whether the
// selection took effect.
func (d *Dispatcher) Select(ch model.ChannelKey) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Phase != PhaseMenuOpen {
		return false
	}
	d.state = State{Phase: PhaseSelected, Channel: ch}
	return true
}

// Cancel abandons the channel confirmation form and returns to Idle.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Phase == PhaseSelected {
		d.state = State{}
	}
}

// Confirm executes the strategy for the selected channel and pushes the
// outcome as a notice. It reports whether a dispatch actually ran: a confirm
// while another dispatch is busy, or with a mismatched channel, is refused.
// The dispatcher always terminates back to Idle, whatever the outcome.
func (d *Dispatcher) Confirm(ctx context.Context, content model.GeneratedContent, req model.ExportRequest) bool {
	d.mu.Lock()
	if d.state.Phase != PhaseSelected || d.state.Channel != req.Channel {
		d.mu.Unlock()
		return false
	}
	d.state = State{Phase: PhaseDispatching, Channel: req.Channel}
	d.mu.Unlock()

	msg, err := d.dispatch(ctx, content, req)

	d.mu.Lock()
	d.state = State{}
	d.mu.Unlock()

	if err != nil {
		d.log.Warn("export failed",
			zap.String("channel", string(req.Channel)),
			zap.Error(err))
		d.notices.Push(notify.KindError, errorMessage(err))
		return true
	}
	d.notices.Push(notify.KindSuccess, msg)
	return true
}

func (d *Dispatcher) dispatch(ctx context.Context, content model.GeneratedContent, req model.ExportRequest) (string, error) {
	switch req.Channel {
	case model.ExportLinkedIn:
		return d.dispatchLinkedIn(ctx, content, req.LinkedIn)
	case model.ExportEmail:
		return d.dispatchEmail(ctx, content, req.Email)
	case model.ExportCall:
		return d.dispatchCall(ctx, content, req.Call)
	default:
		return "", errors.New("unknown export channel " + string(req.Channel))
	}
}

// errorMessage normalizes a dispatch failure into the most specific message
// available: a verbatim backend outcome, then the backend error detail, then
// the clipboard hint, then the generic fallback.
func errorMessage(err error) string {
	var outcome *OutcomeError
	if errors.As(err, &outcome) && strings.TrimSpace(outcome.Message) != "" {
		return outcome.Message
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if errors.Is(err, ErrClipboard) {
		return "Could not copy to clipboard. The message window was not opened."
	}
	return genericFailure
}
