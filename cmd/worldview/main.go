//go:build gl

package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"tileworld/internal/config"
	"tileworld/internal/render/glview"
	"tileworld/internal/terrain"
	"tileworld/internal/world"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file; defaults are used when empty")
	seed := flag.Int64("seed", 0, "seed overriding the configuration")
	spacing := flag.Float64("spacing", 0.25, "world distance between neighbouring vertices")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	uc := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if uc, err = config.Load(*configPath); err != nil {
			log.Error("Loading configuration failed.", "error", err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		uc.World.Seed = *seed
	}
	cfg, err := uc.Config(log)
	if err != nil {
		log.Error("Invalid configuration.", "error", err)
		os.Exit(1)
	}
	res, err := world.Generate(cfg, world.NewRand(uc.Seed()))
	if err != nil {
		log.Error("World generation failed.", "error", err)
		os.Exit(1)
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	window, err := setupWindow()
	if err != nil {
		panic(err)
	}
	w, h := window.GetFramebufferSize()
	viewer, err := glview.New(res.Map, float32(*spacing), w, h)
	if err != nil {
		panic(err)
	}
	viewer.Resize(w, h)

	// The interrupt handler runs on its own goroutine, so GL teardown is
	// handed back to the locked main thread.
	quit, done := make(chan struct{}), make(chan struct{})
	var once sync.Once
	closer.Bind(func() {
		once.Do(func() { close(quit) })
		<-done
	})
	defer closer.Close()

	loop(window, viewer, res.Map, quit)

	viewer.Delete()
	glfw.Terminate()
	close(done)
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(1024, 768, "tileworld", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}
	glfw.SwapInterval(1)
	return window, nil
}

var modeKeys = map[glfw.Key]terrain.Mode{
	glfw.Key1: terrain.ModeHeight,
	glfw.Key2: terrain.ModeHeat,
	glfw.Key3: terrain.ModeMoisture,
	glfw.Key4: terrain.ModeBiome,
}

// loop draws until the window closes or quit is closed. Arrow keys and a
// left-button drag orbit the camera, the scroll wheel zooms and 1-4 switch
// the visualization mode.
func loop(window *glfw.Window, viewer *glview.Viewer, m *world.Map, quit <-chan struct{}) {
	const orbitSpeed = 90 // degrees per second

	var dragging bool
	var lastX, lastY float64
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if dragging {
			viewer.Camera.Orbit(float32(xpos-lastX)*0.3, float32(ypos-lastY)*0.3)
		}
		lastX, lastY = xpos, ypos
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			dragging = action == glfw.Press
		}
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		viewer.Camera.Zoom(1 - float32(yoff)*0.1)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if mode, ok := modeKeys[key]; ok {
			m.SetMode(mode)
			viewer.Refresh()
		}
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		viewer.Resize(width, height)
	})

	last := time.Now()
	for !window.ShouldClose() {
		select {
		case <-quit:
			return
		default:
		}
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		var yaw, pitch float32
		if window.GetKey(glfw.KeyLeft) == glfw.Press {
			yaw -= orbitSpeed * dt
		}
		if window.GetKey(glfw.KeyRight) == glfw.Press {
			yaw += orbitSpeed * dt
		}
		if window.GetKey(glfw.KeyUp) == glfw.Press {
			pitch += orbitSpeed * dt
		}
		if window.GetKey(glfw.KeyDown) == glfw.Press {
			pitch -= orbitSpeed * dt
		}
		if yaw != 0 || pitch != 0 {
			viewer.Camera.Orbit(yaw, pitch)
		}

		viewer.Draw()
		window.SwapBuffers()
		glfw.PollEvents()
	}
}
