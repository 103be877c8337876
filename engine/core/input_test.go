package core

import (
	"errors"
	"testing"
)

func TestInputKeys(t *testing.T) {
	EventInitialize()
	defer EventShutdown()
	InputInitialize()
	defer InputShutdown()

	var pressed []KeyCode
	EventRegister(EVENT_CODE_KEY_PRESSED, "recorder", func(ctx EventContext, _ interface{}) bool {
		pressed = append(pressed, ctx.Data.(*KeyEvent).KeyCode)
		return false
	})

	InputProcessKey(KEY_W, true)
	// Repeated presses without a release fire once.
	InputProcessKey(KEY_W, true)
	if !InputIsKeyDown(KEY_W) {
		t.Error("W is expected to be down")
	}
	if InputWasKeyDown(KEY_W) {
		t.Error("W was not down during the previous tick")
	}
	if len(pressed) != 1 || pressed[0] != KEY_W {
		t.Errorf("expected one press of W, got %v", pressed)
	}

	InputUpdate(0)
	InputProcessKey(KEY_W, false)
	if !InputWasKeyDown(KEY_W) || !InputIsKeyUp(KEY_W) {
		t.Error("W is expected to be released after being down")
	}
}

func TestInputNotInitialized(t *testing.T) {
	InputShutdown()
	if err := InputProcessKey(KEY_A, true); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if InputIsKeyDown(KEY_A) {
		t.Error("no key can be down without input state")
	}
}

func TestInputMouse(t *testing.T) {
	EventInitialize()
	defer EventShutdown()
	InputInitialize()
	defer InputShutdown()

	InputProcessMouseMove(12, 34)
	if x, y := InputGetMousePosition(); x != 12 || y != 34 {
		t.Errorf("expected (12, 34), got (%d, %d)", x, y)
	}
	InputProcessButton(BUTTON_LEFT, true)
	if !InputIsButtonDown(BUTTON_LEFT) {
		t.Error("left button is expected to be down")
	}
}
