// Package app wires the window, the OpenGL function table and the renderer
// into the frame loop.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tinyrange/learngl/internal/config"
	"github.com/tinyrange/learngl/internal/frame"
	"github.com/tinyrange/learngl/internal/gowin/gl"
	"github.com/tinyrange/learngl/internal/gowin/graphics"
	"github.com/tinyrange/learngl/internal/gowin/window"
)

// timerPeriod is the scheduler resolution requested for frame pacing, in ms.
const timerPeriod = 1

// Run opens the window and renders until it is destroyed. Errors are
// returned before the first frame; once the loop starts Run only returns nil.
func Run(cfg config.Config, log *slog.Logger) error {
	granular := frame.BeginPeriod(timerPeriod)
	defer frame.EndPeriod(timerPeriod)

	win, err := window.New(window.Options{
		Title:       cfg.Title,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Major:       cfg.GL.Major,
		Minor:       cfg.GL.Minor,
		CoreProfile: cfg.GL.Core,
	})
	if err != nil {
		return err
	}

	fns, err := gl.Load(win)
	if err != nil {
		win.Close()
		return err
	}
	log.Info("OpenGL context ready",
		"version", fns.GetString(gl.Version),
		"vendor", fns.GetString(gl.Vendor),
		"renderer", fns.GetString(gl.Renderer),
		"functions", len(fns.Procs()),
	)

	scene, err := graphics.NewRenderer(fns, mgl32.Vec4(cfg.ClearColor))
	if err != nil {
		win.Close()
		return err
	}

	// Present a cleared frame before the window appears.
	scene.Clear()
	win.Swap()
	win.Show()

	Loop(log, win, scene, frame.NewPacer(cfg.FrameRate, granular))
	return nil
}

// Surface is the part of window.Window the loop drives.
type Surface interface {
	Poll() []window.Event
	Swap()
	Close()
}

// Scene draws one frame. Its resources belong to the surface's context.
type Scene interface {
	Resize(width, height int)
	Draw()
	Release()
}

type Pacer interface {
	Wait() frame.Stats
}

// Loop renders frames until the surface reports EventDestroyed.
//
// A close request releases the scene and closes the surface; no frame is
// drawn after that.
func Loop(log *slog.Logger, win Surface, scene Scene, pacer Pacer) {
	closed := false
	closeAll := func() {
		if closed {
			return
		}
		scene.Release()
		win.Close()
		closed = true
	}

	for {
		for _, ev := range win.Poll() {
			switch ev.Kind {
			case window.EventResize:
				if !closed {
					scene.Resize(ev.Width, ev.Height)
				}
			case window.EventCloseRequested:
				log.Info("close requested")
				closeAll()
			case window.EventDestroyed:
				log.Info("window destroyed")
				closeAll()
				return
			}
		}

		if !closed {
			scene.Draw()
			win.Swap()
		}

		stats := pacer.Wait()
		log.Debug("frame",
			"fps", fmt.Sprintf("%.2f", stats.FPS()),
			"ms", fmt.Sprintf("%.2f", float64(stats.FrameTime.Microseconds())/1000),
			"work_ms", fmt.Sprintf("%.2f", float64(stats.Work.Microseconds())/1000),
		)
	}
}

// Caption titles the alert shown for a startup error.
func Caption(err error) string {
	var missing *gl.MissingProcError
	var shader *graphics.ShaderError
	if window.IsContextError(err) || errors.As(err, &missing) || errors.As(err, &shader) {
		return "OpenGL Error"
	}
	return "Windows Error"
}
