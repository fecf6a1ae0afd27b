// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/snova-cli/snova/internal/config"
	"github.com/snova-cli/snova/internal/defs"
	"github.com/snova-cli/snova/internal/keys"
	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/mode"
	"github.com/snova-cli/snova/internal/mode/browse"
	"github.com/snova-cli/snova/internal/mode/build"
	"github.com/snova-cli/snova/internal/mode/shared"
	"github.com/snova-cli/snova/internal/pubsub"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/template"
	"github.com/snova-cli/snova/internal/tracing"
	"github.com/snova-cli/snova/internal/ui/logoverlay"
	"github.com/snova-cli/snova/internal/ui/toaster"
	"github.com/snova-cli/snova/internal/watcher"
)

// Model is the root application state.
type Model struct {
	// Mode management
	currentMode mode.AppMode
	browse      browse.Model
	build       build.Model

	// Shared services (passed to mode models)
	services mode.Services

	// Global state
	width  int
	height int

	// Command accepted by a build session, printed once the terminal is
	// released
	finalCommand string

	// Centralized toaster - owned by app, not individual modes
	toaster toaster.Model

	// Live log tail, armed only when logging is on
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	// File watcher for definition auto-reload (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[string]
}

// NewWithConfig creates the application model around an already-loaded
// registry. configPath is where the config file lives; tracer may be nil
// when tracing is disabled.
func NewWithConfig(
	cfg config.Config,
	configPath string,
	reg *registry.Registry,
	problems []*template.DefinitionError,
	tracer *tracing.SessionTracer,
) Model {
	// Watch the definitions file if auto-reload is enabled
	var (
		watcherHandle   *watcher.Watcher
		watcherCtx      context.Context
		watcherCancel   context.CancelFunc
		watcherListener *pubsub.ContinuousListener[string]
	)

	if cfg.AutoReload && cfg.DefsPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(cfg.DefsPath))
		if err == nil {
			if err := w.Start(); err == nil {
				watcherHandle = w
				watcherCtx, watcherCancel = context.WithCancel(context.Background())
				watcherListener = pubsub.NewContinuousListener(watcherCtx, w.Broker())
			} else {
				// Cleanup on start failure
				_ = w.Stop()
			}
		}
		// Watcher init errors are not fatal, the app works without
		// auto-reload
	}

	services := mode.Services{
		Registry:   reg,
		Problems:   problems,
		Config:     &cfg,
		ConfigPath: configPath,
		DefsPath:   cfg.DefsPath,
		Tracer:     tracer,
		Clipboard:  shared.SystemClipboard{},
		Clock:      shared.RealClock{},
	}

	// Tail the log broker when logging is initialized. StartListening
	// returns nil otherwise and the ctrl+x toggle stays inert.
	logOverlay := logoverlay.New()
	logListenCmd := logOverlay.StartListening()

	return Model{
		currentMode:     mode.ModeBrowse,
		browse:          browse.New(services),
		services:        services,
		toaster:         toaster.New(),
		logOverlay:      logOverlay,
		logListenCmd:    logListenCmd,
		watcherHandle:   watcherHandle,
		watcherCtx:      watcherCtx,
		watcherCancel:   watcherCancel,
		watcherListener: watcherListener,
	}
}

// Init implements tea.Model. The app starts in browse mode and arms the
// watcher and log listeners when they are available.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.browse.Init(),
	}

	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.browse = m.browse.SetSize(msg.Width, msg.Height)
		m.build = m.build.SetSize(msg.Width, msg.Height)
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.LogOverlay) && m.logOverlay.Available() {
			m.logOverlay.Toggle()
			return m, nil
		}
		// An open log overlay captures the keyboard
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case browse.StartBuildMsg:
		if msg.Entry == nil {
			return m, nil
		}
		log.Info(log.CatMode, "switching mode", "from", "browse", "to", "build",
			"template", msg.Entry.Template.Raw)
		m.currentMode = mode.ModeBuild
		m.build = build.New(m.services, msg.Entry).SetSize(m.width, m.height)
		return m, m.build.Init()

	case build.AcceptedMsg:
		log.Info(log.CatMode, "command accepted", "command", msg.Command)
		m.finalCommand = msg.Command
		return m, tea.Quit

	case build.CancelledMsg:
		log.Debug(log.CatMode, "switching mode", "from", "build", "to", "browse")
		m.currentMode = mode.ModeBrowse
		return m, nil

	case browse.ReloadRequestMsg:
		return m.reloadDefs("manual")

	case pubsub.Event[string]:
		// The log broker and the defs watcher share this payload type.
		// Log lines arrive as EventEmitted; the rest is the watched
		// definitions file changing on disk. A removed file reloads
		// too, leaving just the builtin set.
		if msg.Type == pubsub.EventEmitted {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		reloaded, cmd := m.reloadDefs(string(msg.Type))
		return reloaded, tea.Batch(cmd, m.watcherListener.Listen())

	case mode.ShowToastMsg:
		m.toaster = m.toaster.Show(msg.Message, msg.Style)

		return m, toaster.ScheduleDismiss(3 * time.Second)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()

		return m, nil
	}

	// Delegate all other messages to the active mode
	switch m.currentMode {
	case mode.ModeBuild:
		var cmd tea.Cmd
		m.build, cmd = m.build.Update(msg)

		return m, cmd

	default:
		var cmd tea.Cmd
		m.browse, cmd = m.browse.Update(msg)

		return m, cmd
	}
}

// reloadDefs rebuilds the registry from scratch and hands the new one to
// every mode. The old registry is left untouched, so an active build
// session keeps the template it started from.
func (m Model) reloadDefs(trigger string) (Model, tea.Cmd) {
	span := trace.SpanFromContext(context.Background())
	if m.services.Tracer != nil {
		_, span = m.services.Tracer.StartLoad(context.Background(), m.services.DefsPath)
	}

	reg := registry.New()
	result := defs.Load(reg, m.services.DefsPath)
	tracing.LoadFinished(span, result.Loaded, len(result.Problems))

	log.Info(log.CatDefs, "definitions reloaded", "trigger", trigger,
		"loaded", result.Loaded, "problems", len(result.Problems))

	m.services.Registry = reg
	m.services.Problems = result.Problems

	var cmd tea.Cmd
	m.browse, cmd = m.browse.Update(mode.DefsReloadedMsg{
		Registry: reg,
		Problems: result.Problems,
		Loaded:   result.Loaded,
	})

	message := fmt.Sprintf("Reloaded %d templates", result.Loaded)
	style := toaster.StyleSuccess
	if n := len(result.Problems); n > 0 {
		message = fmt.Sprintf("Reloaded %d templates, %d problems", result.Loaded, n)
		style = toaster.StyleWarn
	}
	m.toaster = m.toaster.Show(message, style)

	return m, tea.Batch(cmd, toaster.ScheduleDismiss(3*time.Second))
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.currentMode {
	case mode.ModeBuild:
		view = m.build.View()
	default:
		view = m.browse.View()
	}

	// Overlay toaster on top of the active mode's view
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	// Log tail sits above everything else
	if m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	// Resolve mouse zones against the outermost view
	return zone.Scan(view)
}

// FinalCommand returns the command accepted by a build session, or ""
// when the app exited without one.
func (m Model) FinalCommand() string {
	return m.finalCommand
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.logOverlay.StopListening()

	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}

	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}

	return nil
}
