package core

import "testing"

type countingListener struct {
	calls int
}

func TestEventFire(t *testing.T) {
	if err := EventInitialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer EventShutdown()

	first := &countingListener{}
	second := &countingListener{}
	onEvent := func(ctx EventContext, listener interface{}) bool {
		listener.(*countingListener).calls++
		return false
	}

	if !EventRegister(EVENT_CODE_RESIZED, first, onEvent) {
		t.Fatal("expected registration to succeed")
	}
	if EventRegister(EVENT_CODE_RESIZED, first, onEvent) {
		t.Error("duplicate registration is expected to fail")
	}
	EventRegister(EVENT_CODE_RESIZED, second, onEvent)

	if EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &ResizeEvent{Width: 10, Height: 20}}) {
		t.Error("no listener handled the event")
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("expected one call each, got %d and %d", first.calls, second.calls)
	}

	if !EventUnregister(EVENT_CODE_RESIZED, first) {
		t.Error("expected unregistration to succeed")
	}
	if EventUnregister(EVENT_CODE_RESIZED, first) {
		t.Error("second unregistration is expected to fail")
	}
	EventFire(EventContext{Type: EVENT_CODE_RESIZED})
	if first.calls != 1 || second.calls != 2 {
		t.Errorf("expected 1 and 2 calls, got %d and %d", first.calls, second.calls)
	}
}

func TestEventFireHandledStopsPropagation(t *testing.T) {
	EventInitialize()
	defer EventShutdown()

	handled := 0
	EventRegister(EVENT_CODE_APPLICATION_QUIT, "first", func(EventContext, interface{}) bool {
		handled++
		return true
	})
	EventRegister(EVENT_CODE_APPLICATION_QUIT, "second", func(EventContext, interface{}) bool {
		t.Error("handled events must not reach later listeners")
		return false
	})

	if !EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Error("expected the event to be handled")
	}
	if handled != 1 {
		t.Errorf("expected 1 call, got %d", handled)
	}
}

func TestEventBeforeInitialize(t *testing.T) {
	EventShutdown()
	if EventRegister(EVENT_CODE_RESIZED, nil, func(EventContext, interface{}) bool { return true }) {
		t.Error("registration without an event system is expected to fail")
	}
	if EventFire(EventContext{Type: EVENT_CODE_RESIZED}) {
		t.Error("firing without an event system is expected to do nothing")
	}
}
