package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is a *MouseEvent with PosX and PosY set.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. Data is a *MouseEvent with Scroll set.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data is a *ResizeEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// The scene file changed on disk and was loaded again. Data is the new scene.
	EVENT_CODE_SCENE_RELOADED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type ResizeEvent struct {
	Width  uint16
	Height uint16
}

type EventContext struct {
	Type EventCode
	Data interface{}
}

// Should return true if handled.
type FnOnEvent func(context EventContext, listener interface{}) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// State structure.
type eventSystemState struct {
	mu sync.RWMutex
	// Lookup table for event codes.
	registered map[EventCode][]registeredEvent
}

/**
 * Event system internal state.
 */
var eventState *eventSystemState = nil
var eventStateMu sync.Mutex

// EventInitialize sets up an empty event system. Calling it again drops
// every registration.
func EventInitialize() error {
	eventStateMu.Lock()
	defer eventStateMu.Unlock()
	eventState = &eventSystemState{
		registered: make(map[EventCode][]registeredEvent),
	}
	return nil
}

func EventShutdown() error {
	eventStateMu.Lock()
	defer eventStateMu.Unlock()
	eventState = nil
	return nil
}

func getEventState() *eventSystemState {
	eventStateMu.Lock()
	defer eventStateMu.Unlock()
	return eventState
}

/**
 * Register to listen for when events are sent with the provided code. A listener
 * can be registered only once per code.
 * @param code The event code to listen for.
 * @param listener A listener instance, passed back to the callback. Can be nil.
 * @param onEvent The callback to invoke when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	state := getEventState()
	if state == nil || onEvent == nil || int(code) >= MAX_MESSAGE_CODES {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	for _, e := range state.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	state.registered[code] = append(state.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister listener from events with the provided code.
 * @returns true if the listener was registered; otherwise false.
 */
func EventUnregister(code EventCode, listener interface{}) bool {
	state := getEventState()
	if state == nil {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	events := state.registered[code]
	for i, e := range events {
		if e.listener == listener {
			state.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * Handlers run on the caller's goroutine and may register or unregister listeners.
 * @returns true if handled, otherwise false.
 */
func EventFire(context EventContext) bool {
	state := getEventState()
	if state == nil {
		return false
	}
	state.mu.RLock()
	events := append([]registeredEvent(nil), state.registered[context.Type]...)
	state.mu.RUnlock()

	for _, e := range events {
		if e.callback(context, e.listener) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
