package ui

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"dmg-core/internal/emulator"
	"dmg-core/internal/input"
	"dmg-core/internal/ppu"
)

// UI represents the SDL2 presenter: a window showing the emulator
// framebuffer at an integer scale, with keyboard input mapped to the
// joypad.
type UI struct {
	window     *sdl.Window
	renderer   *sdl.Renderer
	texture    *sdl.Texture
	emulator   *emulator.Emulator
	running    bool
	scale      int
	fullscreen bool

	lastTitleFPS float64
}

// NewUI creates the presenter window
func NewUI(emu *emulator.Emulator, scale int) (*UI, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	// Nearest-neighbor scaling keeps the pixels square
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	window, err := sdl.CreateWindow(
		"dmg-core",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(ppu.ScreenWidth*scale),
		int32(ppu.ScreenHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// The framebuffer is packed RGB24, so it streams into the texture
	// without conversion
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24,
		sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth,
		ppu.ScreenHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}

	return &UI{
		window:   window,
		renderer: renderer,
		texture:  texture,
		emulator: emu,
		running:  true,
		scale:    scale,
	}, nil
}

// Run runs the presenter main loop until the window closes
func (u *UI) Run() error {
	defer u.Cleanup()

	u.emulator.Start()

	for u.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			u.handleEvent(event)
		}

		u.updateInput()

		if err := u.emulator.RunFrame(); err != nil {
			return fmt.Errorf("emulation error: %w", err)
		}

		if err := u.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		u.updateTitle()
	}

	return nil
}

// handleEvent handles SDL events
func (u *UI) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		u.running = false
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			u.handleKeyDown(e.Keysym.Sym)
		}
	}
}

// handleKeyDown handles host control keys
func (u *UI) handleKeyDown(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		u.running = false
	case sdl.K_SPACE:
		if u.emulator.Paused {
			u.emulator.Resume()
		} else {
			u.emulator.Pause()
		}
	case sdl.K_r:
		if sdl.GetModState()&sdl.KMOD_CTRL != 0 {
			u.emulator.Reset()
		}
	case sdl.K_f:
		if sdl.GetModState()&sdl.KMOD_ALT != 0 {
			u.toggleFullscreen()
		}
	case sdl.K_F5:
		if err := u.emulator.SaveToFile("dmg-core.state"); err != nil {
			fmt.Printf("save state: %v\n", err)
		}
	case sdl.K_F7:
		if err := u.emulator.LoadFromFile("dmg-core.state"); err != nil {
			fmt.Printf("load state: %v\n", err)
		}
	}
}

// updateInput maps the keyboard to the joypad
func (u *UI) updateInput() {
	keys := sdl.GetKeyboardState()

	u.emulator.SetButton(input.ButtonRight, keys[sdl.SCANCODE_RIGHT] != 0)
	u.emulator.SetButton(input.ButtonLeft, keys[sdl.SCANCODE_LEFT] != 0)
	u.emulator.SetButton(input.ButtonUp, keys[sdl.SCANCODE_UP] != 0)
	u.emulator.SetButton(input.ButtonDown, keys[sdl.SCANCODE_DOWN] != 0)
	u.emulator.SetButton(input.ButtonA, keys[sdl.SCANCODE_Z] != 0)
	u.emulator.SetButton(input.ButtonB, keys[sdl.SCANCODE_X] != 0)
	u.emulator.SetButton(input.ButtonStart, keys[sdl.SCANCODE_RETURN] != 0)
	u.emulator.SetButton(input.ButtonSelect, keys[sdl.SCANCODE_RSHIFT] != 0)
}

// render streams the framebuffer into the window
func (u *UI) render() error {
	buffer := u.emulator.GetFramebuffer()
	if len(buffer) != ppu.FramebufferSize {
		return fmt.Errorf("framebuffer size mismatch: expected %d, got %d", ppu.FramebufferSize, len(buffer))
	}

	pitch := ppu.ScreenWidth * 3
	if err := u.texture.Update(nil, unsafe.Pointer(&buffer[0]), pitch); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	u.renderer.Clear()
	if err := u.renderer.Copy(u.texture, nil, nil); err != nil {
		return fmt.Errorf("failed to copy texture: %w", err)
	}
	u.renderer.Present()

	return nil
}

// updateTitle shows FPS and cycle throughput in the title bar
func (u *UI) updateTitle() {
	fps := u.emulator.GetFPS()
	if fps == u.lastTitleFPS {
		return
	}
	u.lastTitleFPS = fps
	u.window.SetTitle(fmt.Sprintf("dmg-core — %.1f FPS, %d cycles/frame",
		fps, u.emulator.GetCPUCyclesPerFrame()))
}

// toggleFullscreen toggles fullscreen mode
func (u *UI) toggleFullscreen() {
	if u.fullscreen {
		u.window.SetFullscreen(0)
	} else {
		u.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
	u.fullscreen = !u.fullscreen
}

// Cleanup releases SDL resources
func (u *UI) Cleanup() {
	if u.texture != nil {
		u.texture.Destroy()
	}
	if u.renderer != nil {
		u.renderer.Destroy()
	}
	if u.window != nil {
		u.window.Destroy()
	}
	sdl.Quit()
}
