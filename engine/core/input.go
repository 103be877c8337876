package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_SHIFT     KeyCode = 0x10
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0xFF
)

// Mouse state structure
type MouseState struct {
	X       uint16
	Y       uint16
	Buttons [BUTTON_MAX_BUTTONS]bool // button states (pressed/released)
}

// Keyboard state structure
type KeyboardState struct {
	Keys [256]bool
}

// Input state structure that holds current and previous states for keyboard and mouse
type InputState struct {
	mu               sync.RWMutex
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

var inputMu sync.Mutex
var inputState *InputState = nil

// InputInitialize resets the keyboard and mouse state.
func InputInitialize() error {
	inputMu.Lock()
	inputState = &InputState{}
	inputMu.Unlock()
	LogInfo("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputMu.Lock()
	inputState = nil
	inputMu.Unlock()
	return nil
}

func getInputState() *InputState {
	inputMu.Lock()
	defer inputMu.Unlock()
	return inputState
}

// InputUpdate copies current states to previous states. Call once per update tick.
func InputUpdate(deltaTime float64) error {
	state := getInputState()
	if state == nil {
		return nil
	}
	state.mu.Lock()
	state.KeyboardPrevious = state.KeyboardCurrent
	state.MousePrevious = state.MouseCurrent
	state.mu.Unlock()
	return nil
}

// keyboard input
func InputIsKeyDown(key KeyCode) bool {
	state := getInputState()
	if state == nil {
		return false
	}
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.KeyboardCurrent.Keys[key]
}

func InputIsKeyUp(key KeyCode) bool {
	return !InputIsKeyDown(key)
}

func InputWasKeyDown(key KeyCode) bool {
	state := getInputState()
	if state == nil {
		return false
	}
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.KeyboardPrevious.Keys[key]
}

func InputWasKeyUp(key KeyCode) bool {
	return !InputWasKeyDown(key)
}

func InputProcessKey(key KeyCode, pressed bool) error {
	state := getInputState()
	if state == nil {
		return ErrNotInitialized
	}
	state.mu.Lock()
	// Only handle this if the state actually changed.
	changed := state.KeyboardCurrent.Keys[key] != pressed
	state.KeyboardCurrent.Keys[key] = pressed
	state.mu.Unlock()

	if changed {
		code := EVENT_CODE_KEY_RELEASED
		if pressed {
			code = EVENT_CODE_KEY_PRESSED
		}
		// Fire off an event for immediate processing.
		EventFire(EventContext{
			Type: code,
			Data: &KeyEvent{
				KeyCode: key,
			},
		})
	}
	return nil
}

// mouse input
func InputIsButtonDown(button Button) bool {
	state := getInputState()
	if state == nil {
		return false
	}
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.MouseCurrent.Buttons[button]
}

func InputGetMousePosition() (int32, int32) {
	state := getInputState()
	if state == nil {
		return 0, 0
	}
	state.mu.RLock()
	defer state.mu.RUnlock()
	return int32(state.MouseCurrent.X), int32(state.MouseCurrent.Y)
}

func InputProcessButton(button Button, pressed bool) error {
	state := getInputState()
	if state == nil {
		return ErrNotInitialized
	}
	state.mu.Lock()
	changed := state.MouseCurrent.Buttons[button] != pressed
	state.MouseCurrent.Buttons[button] = pressed
	state.mu.Unlock()

	if changed {
		code := EVENT_CODE_BUTTON_RELEASED
		if pressed {
			code = EVENT_CODE_BUTTON_PRESSED
		}
		EventFire(EventContext{
			Type: code,
			Data: &MouseEvent{
				Button: button,
			},
		})
	}
	return nil
}

func InputProcessMouseMove(x uint16, y uint16) error {
	state := getInputState()
	if state == nil {
		return ErrNotInitialized
	}
	state.mu.Lock()
	changed := state.MouseCurrent.X != x || state.MouseCurrent.Y != y
	state.MouseCurrent.X = x
	state.MouseCurrent.Y = y
	state.mu.Unlock()

	if changed {
		EventFire(EventContext{
			Type: EVENT_CODE_MOUSE_MOVED,
			Data: &MouseEvent{
				PosX: x,
				PosY: y,
			},
		})
	}
	return nil
}

func InputProcessMouseWheel(zDelta int8) error {
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{
			Scroll: zDelta,
		},
	})
	return nil
}
