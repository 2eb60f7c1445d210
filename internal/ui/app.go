package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/api"
	"github.com/outboundly/outboundly/internal/app"
	"github.com/outboundly/outboundly/internal/export"
	"github.com/outboundly/outboundly/internal/generate"
	"github.com/outboundly/outboundly/internal/model"
	"github.com/outboundly/outboundly/internal/notify"
	"github.com/outboundly/outboundly/internal/store"
	"github.com/outboundly/outboundly/internal/ui/components/callqueue"
	"github.com/outboundly/outboundly/internal/ui/components/dashboard"
	"github.com/outboundly/outboundly/internal/ui/components/dialog"
	"github.com/outboundly/outboundly/internal/ui/components/draftform"
	"github.com/outboundly/outboundly/internal/ui/components/statusbar"
	"github.com/outboundly/outboundly/internal/ui/keys"
	"github.com/outboundly/outboundly/internal/ui/styles"
)

// Page identifies a top-level workspace page.
type Page int

const (
	// PageCompose is the campaign draft and result workspace.
	PageCompose Page = iota
	// PageCallQueue lists pending call-queue entries.
	PageCallQueue
	// PageDashboard shows read-only pipeline stats.
	PageDashboard

	pageCount
)

// DialogMode represents the current modal dialog being shown.
type DialogMode int

const (
	DialogNone DialogMode = iota
	DialogExportConfirm
	DialogSettings
)

const (
	minAppWidth  = 60
	minAppHeight = 16
)

// channelMenuEntry is one row of the export dropdown.
type channelMenuEntry struct {
	Key   model.ChannelKey
	Label string
}

var channelMenu = []channelMenuEntry{
	{model.ExportLinkedIn, "Export to LinkedIn"},
	{model.ExportEmail, "Send as Email"},
	{model.ExportCall, "Push to Call Queue"},
}

// linkedInModeEntry is one row of the LinkedIn sub-mode menu.
type linkedInModeEntry struct {
	Mode  model.LinkedInMode
	Label string
}

var linkedInModeMenu = []linkedInModeEntry{
	{model.LinkedInAutomated, "Automated message via webhook"},
	{model.LinkedInManualMessage, "Manual DM · copy + open messaging"},
	{model.LinkedInFeedShare, "Share to feed · pre-filled composer"},
}

// App is the main application model.
type App struct {
	// Collaborators
	cfg      *app.Config
	store    store.DraftStore
	client   *api.Client
	queue    *notify.Queue
	orch     *generate.Orchestrator
	disp     *export.Dispatcher
	opener   export.URLOpener
	copyText export.CopyFunc
	log      *zap.Logger

	// Components
	form      draftform.Model
	callQueue callqueue.Model
	dashboard dashboard.Model
	statusBar statusbar.Model
	spinner   spinner.Model

	// Dialogs
	dialogMode     DialogMode
	exportDialog   dialog.InputDialog
	settingsDialog dialog.InputDialog

	// Menu cursors
	exportCursor   int
	linkedinCursor int

	// Export flow state
	modeMenuOpen bool
	pendingMode  model.LinkedInMode
	exportBusy   bool

	// Loaded backend settings, kept while the settings dialog is open.
	settings *api.Settings

	// State
	page     Page
	keyMap   keys.KeyMap
	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates the application model.
func New(
	cfg *app.Config,
	s store.DraftStore,
	client *api.Client,
	queue *notify.Queue,
	orch *generate.Orchestrator,
	disp *export.Dispatcher,
	opener export.URLOpener,
	copyText export.CopyFunc,
	log *zap.Logger,
) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(styles.Accent)

	a := App{
		cfg:       cfg,
		store:     s,
		client:    client,
		queue:     queue,
		orch:      orch,
		disp:      disp,
		opener:    opener,
		copyText:  copyText,
		log:       log,
		form:      draftform.New(s.Draft()),
		callQueue: callqueue.New(),
		dashboard: dashboard.New(),
		statusBar: statusbar.New(),
		spinner:   sp,
		keyMap:    keys.DefaultKeyMap(),
	}
	a.statusBar.SetPageLabel(a.pageLabel())
	return a
}

// Init starts the notice watcher.
func (a App) Init() tea.Cmd {
	return waitForNotices(a.queue)
}

func (a App) pageLabel() string {
	switch a.page {
	case PageCallQueue:
		return "Call Queue"
	case PageDashboard:
		return "Dashboard"
	default:
		return "Compose"
	}
}

func (a App) windowTooSmall() bool {
	return a.width < minAppWidth || a.height < minAppHeight
}
