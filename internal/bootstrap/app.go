package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"retreivr-launcher/internal/diagnostics"
	"retreivr-launcher/internal/domain"
	"retreivr-launcher/internal/launcher"
	"retreivr-launcher/internal/ops"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// eventName is the push channel the frontend subscribes to.
const eventName = "launcher:event"

// App binds launcher operations to the webview.
type App struct {
	services *launcher.Services
	guard    *ops.Guard
	events   *ops.EventBus
	logger   *slog.Logger
	assets   fs.FS

	// openDirectoryDialog is the native picker; tests replace it.
	openDirectoryDialog func(ctx context.Context, opts wailsruntime.OpenDialogOptions) (string, error)

	mu         sync.Mutex
	runtimeCtx context.Context
}

// New builds the application for development mode, serving ./frontend.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	logger := launcher.NewLogger(os.Stderr)
	services, err := launcher.New(logger)
	if err != nil {
		return nil, err
	}

	app := newApp(services)
	app.assets = assets
	logger.Info("launcher ready", "version", launcher.Version, "runtime_dir", services.Paths.BaseDir)
	return app, nil
}

func newApp(services *launcher.Services) *App {
	return &App{
		services:            services,
		guard:               ops.NewGuard(),
		events:              ops.NewEventBus(200),
		logger:              services.Logger,
		openDirectoryDialog: wailsruntime.OpenDirectoryDialog,
	}
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Retreivr Launcher",
		Width:       1040,
		Height:      760,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores Wails runtime context for dialogs and push events.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// DockerAvailable reports whether the container engine answers.
func (a *App) DockerAvailable() bool {
	return a.services.Checker.DockerAvailable(a.context())
}

// ComposeExists reports whether compose.yaml has been generated.
func (a *App) ComposeExists() bool {
	return a.services.Checker.ComposeExists()
}

// InstallGuidance returns engine install instructions for this OS.
func (a *App) InstallGuidance() domain.InstallGuidance {
	return a.services.Platform.Guidance()
}

// LauncherVersionInfo checks for a newer launcher release.
func (a *App) LauncherVersionInfo() domain.LauncherVersionInfo {
	return a.services.Updates.LauncherVersionInfo(a.context(), launcher.Version)
}

// CheckImageUpdate pulls the configured image and reports whether it changed.
func (a *App) CheckImageUpdate() domain.ImageUpdateStatus {
	settings := a.services.Store.Load()
	return a.services.Updates.ImageUpdateStatus(a.context(), settings.Image)
}

// UpdateAndRestart pulls the image and recreates the service.
func (a *App) UpdateAndRestart() (string, error) {
	return a.dispatch("update_and_restart", func(ctx context.Context) (string, error) {
		return a.services.Lifecycle.UpdateAndRestart(ctx)
	})
}

// GetSettings returns the persisted settings, or defaults.
func (a *App) GetSettings() domain.Settings {
	return a.services.Store.Load()
}

// SaveSettings validates and persists settings and regenerates runtime files.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	var saved domain.Settings
	_, err := a.dispatch("save_settings", func(context.Context) (string, error) {
		var err error
		saved, err = a.services.Lifecycle.SaveSettings(settings)
		return "Configuration saved.", err
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return saved, nil
}

// ResetSettings restores and persists the default settings.
func (a *App) ResetSettings() (domain.Settings, error) {
	var defaults domain.Settings
	_, err := a.dispatch("reset_settings", func(context.Context) (string, error) {
		var err error
		defaults, err = a.services.Lifecycle.ResetSettings()
		return "Configuration reset to defaults.", err
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return defaults, nil
}

// BrowseForDirectory asks the user for a folder. An empty result means the
// user cancelled.
func (a *App) BrowseForDirectory() (string, error) {
	ctx, err := a.runtimeContext()
	if err == nil {
		path, dialogErr := a.openDirectoryDialog(ctx, wailsruntime.OpenDialogOptions{
			Title: "Select folder",
		})
		if dialogErr == nil {
			return strings.TrimSpace(path), nil
		}
		a.logger.Debug("native directory dialog failed, using system picker", "error", dialogErr)
	}
	return a.services.Platform.PickFolder(a.context())
}

// OnboardingChecklist summarizes first-run progress.
func (a *App) OnboardingChecklist() domain.OnboardingChecklist {
	settings := a.services.Store.Load()
	return a.services.Checker.Onboarding(a.context(), settings, a.services.Store.Exists())
}

// OpenComposeFolder reveals the runtime directory in the file manager.
func (a *App) OpenComposeFolder() error {
	dir, err := a.services.Lifecycle.RuntimeDir()
	if err != nil {
		return err
	}
	return a.services.Platform.OpenPath(dir)
}

// OpenDataFolder reveals the resolved data directory in the file manager.
func (a *App) OpenDataFolder() error {
	dir, err := a.services.Lifecycle.DataDir()
	if err != nil {
		return err
	}
	return a.services.Platform.OpenPath(dir)
}

// PreflightStartChecks reports start readiness for the persisted settings.
func (a *App) PreflightStartChecks() domain.PreflightReport {
	return a.services.Checker.Preflight(a.context(), a.services.Store.Load())
}

// ViewLogs returns the service log tail; lines <= 0 uses the default.
func (a *App) ViewLogs(lines int) (string, error) {
	return a.services.Lifecycle.Logs(a.context(), lines)
}

// ContainerRunning reports whether compose lists a running container.
func (a *App) ContainerRunning() bool {
	return a.services.Checker.ContainerRunning(a.context())
}

// DockerDiagnostics runs the full health chain.
func (a *App) DockerDiagnostics() domain.DiagnosticsReport {
	return a.services.Checker.Run(a.context(), a.services.Store.Load())
}

// WebURL is where the service UI is published for the current settings.
func (a *App) WebURL() string {
	return diagnostics.WebURL(a.services.Store.Load())
}

// InstallRetreivr prepares runtime files and starts the stack.
func (a *App) InstallRetreivr() error {
	_, err := a.dispatch("install", func(ctx context.Context) (string, error) {
		return "Retreivr started.", a.services.Lifecycle.Install(ctx)
	})
	return err
}

// StopRetreivr stops the stack.
func (a *App) StopRetreivr() error {
	_, err := a.dispatch("stop", func(ctx context.Context) (string, error) {
		return "Retreivr stopped.", a.services.Lifecycle.Stop(ctx)
	})
	return err
}

// CurrentOperation returns the last admitted operation and its status.
func (a *App) CurrentOperation() domain.Operation {
	return a.guard.Current()
}

// ActivityEvents returns all events with sequence greater than sinceSeq.
func (a *App) ActivityEvents(sinceSeq int64) []ops.Event {
	return a.events.Since(sinceSeq)
}

// dispatch admits one state-changing operation at a time, runs it
// synchronously and records its outcome as activity events.
func (a *App) dispatch(name string, run func(ctx context.Context) (string, error)) (string, error) {
	id := fmt.Sprintf("op-%d", time.Now().UnixNano())
	if err := a.guard.Begin(id, name); err != nil {
		return "", err
	}
	op := a.guard.Current()
	a.publishEvent(ops.Event{
		OperationID: id,
		Operation:   name,
		Type:        ops.EventTypeStatus,
		Status:      domain.OperationStatusRunning,
		Message:     "Running " + name,
	})

	message, err := run(a.context())
	_ = a.guard.Finish(err)
	if err != nil {
		a.logger.Warn("launcher operation failed", "operation", name, "error", err)
		a.publishEvent(ops.ErrorEvent(op, err))
		return "", err
	}

	a.publishEvent(ops.Event{
		OperationID: id,
		Operation:   name,
		Type:        ops.EventTypeResult,
		Status:      domain.OperationStatusDone,
		Message:     message,
	})
	return message, nil
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event ops.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, eventName, published)
	}
}

// context returns the Wails runtime context, or a background context
// before startup.
func (a *App) context() context.Context {
	if ctx, err := a.runtimeContext(); err == nil {
		return ctx
	}
	return context.Background()
}

// runtimeContext returns current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, errRuntimeNotReady
	}
	return a.runtimeCtx, nil
}

var errRuntimeNotReady = errors.New("runtime context is not initialized")
