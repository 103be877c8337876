package core

import (
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.010)
	}
	if ms := m.FrameTime(); ms < 9.999 || ms > 10.001 {
		t.Errorf("expected a 10ms average, got %f", ms)
	}

	// The window only keeps the last AVG_COUNT frames.
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.020)
	}
	if ms := m.FrameTime(); ms < 19.999 || ms > 20.001 {
		t.Errorf("expected a 20ms average, got %f", ms)
	}
	if m.TotalFrames() != uint64(2*AVG_COUNT) {
		t.Errorf("expected %d frames, got %d", 2*AVG_COUNT, m.TotalFrames())
	}
	// 30 frames of 10ms and 30 of 20ms add up to 900ms: no full second yet.
	if m.FPS() != 0 {
		t.Errorf("expected no FPS sample yet, got %f", m.FPS())
	}
	for i := 0; i < 10; i++ {
		m.Update(0.020)
	}
	if m.FPS() == 0 {
		t.Error("expected an FPS sample after one second of frames")
	}
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock()
	c.now = func() time.Time { return now }

	c.Update()
	if c.Elapsed() != 0 {
		t.Errorf("a stopped clock must not advance, got %f", c.Elapsed())
	}

	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("expected 1.5s, got %f", c.Elapsed())
	}

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("Stop must keep the elapsed time, got %f", c.Elapsed())
	}
}
