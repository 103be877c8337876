package core

import "github.com/spaghettifunk/lumen/engine/containers"

const AVG_COUNT int = 30

// MetricsState keeps a moving average of frame times and a frames-per-second
// counter refreshed once per accumulated second.
type MetricsState struct {
	frameTimes         *containers.RingQueue[float64]
	msAvg              float64
	frames             int32
	totalFrames        uint64
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *MetricsState {
	return &MetricsState{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records a frame that took frameElapsedTime seconds.
func (m *MetricsState) Update(frameElapsedTime float64) {
	// Calculate frame ms average over the last AVG_COUNT frames.
	frameMS := frameElapsedTime * 1000.0
	m.frameTimes.Push(frameMS)

	sum := 0.0
	m.frameTimes.Each(func(ms float64) { sum += ms })
	m.msAvg = sum / float64(m.frameTimes.Len())

	// Calculate Frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	// Count all Frames.
	m.frames++
	m.totalFrames++
}

func (m *MetricsState) FPS() float64 {
	return m.fps
}

// FrameTime returns the average frame time in milliseconds.
func (m *MetricsState) FrameTime() float64 {
	return m.msAvg
}

func (m *MetricsState) TotalFrames() uint64 {
	return m.totalFrames
}

func (m *MetricsState) Frame() (float64, float64) {
	return m.fps, m.msAvg
}
