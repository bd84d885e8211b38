package core

import (
	"math"
	"time"

	"github.com/loov/hrtime"
)

// Frameclock measures frame times and keeps running statistics over the last
// SampleDepth frames.
type Frameclock struct {
	now func() time.Duration

	stamp   time.Duration
	elapsed time.Duration

	samples []time.Duration
	index   int
	accum   time.Duration

	timeMin, timeMax, timeAvg, timeCurrent time.Duration
	timeTotal                              time.Duration

	freqMin, freqMax, freqAvg, freqCurrent float32
	frames                                 uint64
}

// NewFrameclock returns a clock averaging over sampleDepth frames.
func NewFrameclock(sampleDepth int) *Frameclock {
	if sampleDepth < 1 {
		sampleDepth = 1
	}
	c := &Frameclock{
		now:     hrtime.Now,
		samples: make([]time.Duration, sampleDepth),
		freqMin: math.MaxFloat32,
		timeMin: time.Duration(math.MaxInt64),
	}
	c.stamp = c.now()
	return c
}

// Start resets the reference time stamp without recording a frame.
func (c *Frameclock) Start() {
	c.stamp = c.now()
}

// Restart records the time since the last Start/Restart as one frame and returns it.
func (c *Frameclock) Restart() time.Duration {
	end := c.now()
	c.elapsed = end - c.stamp
	c.stamp = end
	c.add(c.elapsed)
	return c.elapsed
}

func (c *Frameclock) add(dt time.Duration) {
	c.timeCurrent = dt
	c.accum -= c.samples[c.index]
	c.samples[c.index] = dt
	c.accum += dt
	c.timeTotal += dt
	c.index++
	if c.index >= len(c.samples) {
		c.index = 0
	}

	if dt != 0 {
		c.freqCurrent = float32(1 / dt.Seconds())
	}
	if c.accum != 0 {
		c.freqAvg = float32(float64(len(c.samples)) / c.accum.Seconds())
	}
	c.timeAvg = c.accum / time.Duration(len(c.samples))

	c.freqMin = min(c.freqMin, c.freqCurrent)
	c.freqMax = max(c.freqMax, c.freqCurrent)
	c.timeMin = min(c.timeMin, c.timeCurrent)
	c.timeMax = max(c.timeMax, c.timeCurrent)
	c.frames++
}

func (c *Frameclock) SampleDepth() int       { return len(c.samples) }
func (c *Frameclock) Dt() time.Duration      { return c.elapsed }
func (c *Frameclock) Min() time.Duration     { return c.timeMin }
func (c *Frameclock) Max() time.Duration     { return c.timeMax }
func (c *Frameclock) Avg() time.Duration     { return c.timeAvg }
func (c *Frameclock) Elapsed() time.Duration { return c.timeTotal }
func (c *Frameclock) Frames() uint64         { return c.frames }

// Fps is the average frame frequency over the sample window.
func (c *Frameclock) Fps() float32 { return c.freqAvg }

// FpsRange reports the lowest and highest single-frame frequency seen so far.
func (c *Frameclock) FpsRange() (lo, hi float32) { return c.freqMin, c.freqMax }
