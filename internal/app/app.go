// Package app hosts the SDL window and drives a renderer from the event
// loop.
package app

import (
	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vkplayground/vkplayground/internal/config"
	"github.com/vkplayground/vkplayground/internal/gfx"
)

// idleDelay is how long the loop sleeps between event polls while nothing
// is being drawn, in milliseconds.
const idleDelay = 50

// App owns the window and the renderer drawing into it.
type App struct {
	cfg         config.Config
	log         logrus.FieldLogger
	newRenderer func() gfx.Renderer

	window    *sdl.Window
	renderer  gfx.Renderer
	stats     *FrameStats
	rendering bool
}

// New returns an App that will draw with the renderer returned by
// newRenderer. The renderer is created when Run is called.
func New(cfg config.Config, log logrus.FieldLogger, newRenderer func() gfx.Renderer) *App {
	return &App{
		cfg:         cfg,
		log:         log,
		newRenderer: newRenderer,
		rendering:   true,
	}
}

// Run opens the window, initializes the renderer and draws until the user
// quits. It must be called from the main OS thread.
func (a *App) Run() error {
	if err := a.initWindow(); err != nil {
		return errors.Wrap(err, "init window")
	}
	defer a.cleanup()

	a.renderer = a.newRenderer()
	if err := a.renderer.Initialize(a.window); err != nil {
		return errors.Wrap(err, "initialize renderer")
	}

	return a.mainLoop()
}

func (a *App) initWindow() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	window, err := sdl.CreateWindow(a.cfg.Window.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(a.cfg.Window.Width), int32(a.cfg.Window.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return err
	}
	a.window = window

	a.log.Infof("window %q created at %dx%d", a.cfg.Window.Title, a.cfg.Window.Width, a.cfg.Window.Height)
	return nil
}

func (a *App) mainLoop() error {
	a.stats = NewFrameStats(a.cfg.Renderer.StatsInterval, hrtime.Now)

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if a.handleEvent(event) {
				return nil
			}
		}

		if !a.rendering {
			sdl.Delay(idleDelay)
			continue
		}

		start := hrtime.Now()
		if err := a.renderer.Draw(); err != nil {
			return errors.Wrap(err, "draw frame")
		}

		if report, ok := a.stats.Record(hrtime.Since(start)); ok {
			a.log.WithFields(logrus.Fields{
				"frames":     report.Frames,
				"fps":        report.FPS,
				"frame_time": report.AverageFrame,
			}).Info("frame stats")
		}
	}
}

// handleEvent applies one event and reports whether the loop should stop.
func (a *App) handleEvent(event sdl.Event) (quit bool) {
	a.log.Tracef("event %s", EventName(event))

	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
			return true
		}

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_MINIMIZED:
			a.log.Debug("window minimized, rendering paused")
			a.rendering = false
		case sdl.WINDOWEVENT_RESTORED:
			a.log.Debug("window restored, rendering resumed")
			a.rendering = true
			if a.stats != nil {
				a.stats.Reset()
			}
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			a.renderer.Resize(int(e.Data1), int(e.Data2))
		}
	}

	return false
}

func (a *App) cleanup() {
	if a.renderer != nil {
		a.renderer.Destroy()
		a.renderer = nil
	}

	if a.window != nil {
		if err := a.window.Destroy(); err != nil {
			a.log.WithError(err).Warn("destroy window")
		}
		a.window = nil
	}

	sdl.Quit()
}
