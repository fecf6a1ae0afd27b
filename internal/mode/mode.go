// Package mode defines the app modes and the shared services injected
// into them.
package mode

import (
	"time"

	"github.com/snova-cli/snova/internal/config"
	"github.com/snova-cli/snova/internal/mode/shared"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/template"
	"github.com/snova-cli/snova/internal/tracing"
	"github.com/snova-cli/snova/internal/ui/toaster"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeBrowse AppMode = iota
	ModeBuild
)

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Registry   *registry.Registry
	Problems   []*template.DefinitionError
	Config     *config.Config
	ConfigPath string
	DefsPath   string
	Tracer     *tracing.SessionTracer
	Clipboard  shared.Clipboard
	Clock      shared.Clock
}

// Now returns the current time from the injected clock, or the wall
// clock when none was set.
func (s Services) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// ShowToastMsg asks the app to pop a transient toast over the current mode.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}

// DefsReloadedMsg is broadcast by the app after command definitions were
// reloaded, whether from the file watcher or an explicit reload.
type DefsReloadedMsg struct {
	Registry *registry.Registry
	Problems []*template.DefinitionError
	Loaded   int
}
