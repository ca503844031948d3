//go:build windows

package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/go-ole/go-ole"

	"github.com/AbhinandAK350/TranslucentTB/internal/config"
	"github.com/AbhinandAK350/TranslucentTB/internal/engine"
	"github.com/AbhinandAK350/TranslucentTB/internal/exclude"
	"github.com/AbhinandAK350/TranslucentTB/internal/tray"
	"github.com/AbhinandAK350/TranslucentTB/internal/watcher"
	"github.com/AbhinandAK350/TranslucentTB/internal/winapi"
)

// Run starts the application and blocks until it exits. It must be
// called from the main goroutine: the tray loop has to own it.
func Run(opts Options) error {
	if !winapi.IsSingleInstance() {
		// Ask the running instance to exit so this one takes over.
		winapi.NotifyExistingInstance()
		time.Sleep(500 * time.Millisecond)
	}

	// S_FALSE just means COM was already initialized on this thread.
	const sFalse = 1
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	cfg, matcher, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := newLogger(opts.Verbose || cfg.Verbose)

	desktop := winapi.NewDesktop()
	defer desktop.Close()

	compositor := winapi.NewCompositor()
	if !compositor.Available() {
		// The rest of the app still runs; every accent call is a no-op
		// for the process lifetime.
		logger.Warn("compositor attribute interface unavailable, appearance changes disabled")
	}

	eng := engine.New(cfg, matcher, desktop, compositor, logger)
	eng.OnPeekChanged = desktop.SetPeekButtonVisible
	eng.Rebuild()
	if eng.SurfaceCount() == 0 {
		logger.Warn("no taskbar found, waiting for the shell")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bridge := winapi.NewBridge(eng.Post)
	bridge.OnNewInstance = cancel
	if err := bridge.Start(); err != nil {
		return fmt.Errorf("start event bridge: %w", err)
	}
	defer bridge.Stop()

	if w := startWatcher(opts, eng, logger); w != nil {
		defer w.Stop()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		eng.Run(ctx)
	}()

	if opts.NoTray || cfg.NoTray {
		<-ctx.Done()
	} else {
		t := tray.New(logger, cancel)
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		t.Run()
		cancel()
	}

	// The engine restores every surface on its way out; wait for that
	// before tearing the bridge down.
	wg.Wait()
	return nil
}

func loadConfig(opts Options) (*config.Config, *exclude.Matcher, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFromPath(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	excludePath, err := config.ExcludePath()
	if err != nil {
		return nil, nil, err
	}
	matcher, err := exclude.Load(excludePath)
	if err != nil {
		return nil, nil, fmt.Errorf("load exclusion rules: %w", err)
	}
	return cfg, matcher, nil
}

// startWatcher observes the configuration files and hot-reloads the
// engine on change. A watcher failure is not fatal; edits then require
// a restart.
func startWatcher(opts Options, eng *engine.Engine, logger *slog.Logger) *watcher.Watcher {
	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.Path()
		if err != nil {
			logger.Warn("config watcher disabled", "error", err)
			return nil
		}
	}
	excludePath, err := config.ExcludePath()
	if err != nil {
		logger.Warn("config watcher disabled", "error", err)
		return nil
	}

	files := []string{configPath, excludePath}
	w, err := watcher.New(filepath.Dir(configPath), files, logger)
	if err != nil {
		logger.Warn("config watcher disabled", "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		logger.Warn("config watcher disabled", "error", err)
		w.Stop()
		return nil
	}

	go func() {
		for path := range w.Changes() {
			cfg, matcher, err := loadConfig(opts)
			if err != nil {
				logger.Error("configuration reload failed", "path", path, "error", err)
				continue
			}
			eng.UpdateConfig(cfg, matcher)
		}
	}()
	return w
}
