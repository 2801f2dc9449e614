package frontend

import (
	"encoding/binary"
	"io"
	"sync"
)

// pcmStream adapts the APU's mono float32 [-1,1] samples onto the 16-bit
// signed stereo little-endian PCM stream ebiten's audio.Player reads from.
// It is an io.Reader so ebiten's own mixer goroutine can pull from it
// independently of the emulation loop; enqueue is the only method called
// from the Update goroutine, and the two sides only share the mutex-guarded
// ring below.
type pcmStream struct {
	mu         sync.Mutex
	pending    []byte
	sampleRate int
}

func newPCMStream(sampleRate int) *pcmStream {
	return &pcmStream{sampleRate: sampleRate}
}

// enqueue appends newly generated mono samples to the stream, duplicated
// across both stereo channels since the core's mixer produces one combined
// output rather than a stereo image.
func (s *pcmStream) enqueue(samples []float32) {
	if len(samples) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range samples {
		v := int16(clampSample(f) * 32767)
		var buf [4]byte
		binary.LittleEndian.PutUint16(buf[0:2], uint16(v))
		binary.LittleEndian.PutUint16(buf[2:4], uint16(v))
		s.pending = append(s.pending, buf[:]...)
	}
}

func clampSample(f float32) float32 {
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}

// Read implements io.Reader; silence is emitted once the buffer underruns
// rather than blocking, since the audio mixer goroutine must never stall
// waiting on the emulation loop.
func (s *pcmStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	if n < len(p) {
		for i := n; i < len(p); i++ {
			p[i] = 0
		}
		n = len(p)
	}
	return n, nil
}

var _ io.Reader = (*pcmStream)(nil)
