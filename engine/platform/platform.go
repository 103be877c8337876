package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/lumen/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window    *glfw.Window
	startTime float64
}

func New() (*Platform, error) {
	return &Platform{
		Window: nil,
	}, nil
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetMouseButtonCallback(mouseButtonCallback)
	p.Window.SetCursorPosCallback(cursorPosCallback)
	p.Window.SetScrollCallback(scrollCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetCloseCallback(closeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	p.startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. The callbacks feed them to
// the input and event systems.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return p.Window != nil && !p.Window.ShouldClose()
}

// FramebufferSize returns the size of the window in pixels.
func (p *Platform) FramebufferSize() (int, int) {
	if p.Window == nil {
		return 0, 0
	}
	return p.Window.GetFramebufferSize()
}

// AbsoluteTime returns the seconds elapsed since Startup.
func (p *Platform) AbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code, ok := translateKey(key)
	if !ok {
		return
	}
	if err := core.InputProcessKey(code, action == glfw.Press); err != nil {
		core.LogWarn("dropped key %d: %s", key, err)
	}
}

func mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	_ = core.InputProcessButton(b, action == glfw.Press)
}

func cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if xpos < 0 || ypos < 0 {
		return
	}
	_ = core.InputProcessMouseMove(uint16(xpos), uint16(ypos))
}

func scrollCallback(w *glfw.Window, xoff, yoff float64) {
	var delta int8
	switch {
	case yoff > 0:
		delta = 1
	case yoff < 0:
		delta = -1
	default:
		return
	}
	_ = core.InputProcessMouseWheel(delta)
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.ResizeEvent{
			Width:  uint16(width),
			Height: uint16(height),
		},
	})
}

func closeCallback(w *glfw.Window) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_APPLICATION_QUIT,
	})
}

var keyTable = map[glfw.Key]core.KeyCode{
	glfw.KeyBackspace:    core.KEY_BACKSPACE,
	glfw.KeyTab:          core.KEY_TAB,
	glfw.KeyEnter:        core.KEY_ENTER,
	glfw.KeyEscape:       core.KEY_ESCAPE,
	glfw.KeySpace:        core.KEY_SPACE,
	glfw.KeyLeft:         core.KEY_LEFT,
	glfw.KeyUp:           core.KEY_UP,
	glfw.KeyRight:        core.KEY_RIGHT,
	glfw.KeyDown:         core.KEY_DOWN,
	glfw.KeyLeftShift:    core.KEY_LSHIFT,
	glfw.KeyRightShift:   core.KEY_RSHIFT,
	glfw.KeyLeftControl:  core.KEY_LCONTROL,
	glfw.KeyRightControl: core.KEY_RCONTROL,
}

// translateKey maps a GLFW key to the engine key code.
func translateKey(key glfw.Key) (core.KeyCode, bool) {
	// GLFW letters share their ASCII codes with the engine's.
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		return core.KeyCode(key), true
	}
	code, ok := keyTable[key]
	return code, ok
}
