// Package framebuffer implements a rent/return handoff between the PPU and
// a presentation front-end, mirroring the reference core's single-owner
// rental pattern so the PPU never writes into a buffer a front-end is still
// reading.
package framebuffer

import (
	"sync"

	"github.com/pkg/errors"
)

// PixelFormat names the channel layout rented buffers are packed in.
type PixelFormat int

const (
	RGBA8888 PixelFormat = iota
)

// ErrBorrowConflict is returned by Rent when the data is already on loan.
var ErrBorrowConflict = errors.New("framebuffer: data already rented")

// Framebuffer is a fixed-size pixel buffer with exclusive, returnable
// access to its backing slice. Copies share the same backing storage since
// the struct holds a pointer to the shared mutex and data slice rather than
// owning them directly.
type Framebuffer struct {
	width, height int
	format        PixelFormat
	mu            *sync.Mutex
	data          *[]uint8
}

// New allocates a zeroed width*height*4 byte buffer.
func New(width, height int, format PixelFormat) *Framebuffer {
	data := make([]uint8, width*height*4)
	return &Framebuffer{
		width:  width,
		height: height,
		format: format,
		mu:     &sync.Mutex{},
		data:   &data,
	}
}

func (f *Framebuffer) Width() int         { return f.width }
func (f *Framebuffer) Height() int        { return f.height }
func (f *Framebuffer) Format() PixelFormat { return f.format }

// Rental is the exclusive loan returned by Rent; call Return when done
// writing or reading so the next renter can proceed.
type Rental struct {
	owner *Framebuffer
	Data  []uint8
}

// Return hands the data back to the framebuffer. A Rental must be returned
// exactly once; calling Return twice is a programming error the same way
// closing a channel twice is.
func (r *Rental) Return() {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	*r.owner.data = r.Data
	r.Data = nil
}

// Rent takes exclusive access to the backing slice. It returns
// ErrBorrowConflict if the data is already checked out to another renter -
// callers (the PPU at start-of-frame, or a front-end about to present) must
// treat that as "try again next tick", not a fatal error.
func (f *Framebuffer) Rent() (*Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if *f.data == nil {
		return nil, errors.WithMessage(ErrBorrowConflict, "rent")
	}
	data := *f.data
	*f.data = nil
	return &Rental{owner: f, Data: data}, nil
}
