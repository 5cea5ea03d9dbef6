package gpucmd

import "fmt"

// PoolKind is the category of command buffers a pool allocates.
type PoolKind uint8

const (
	// PoolKindPrimary allocates primary command buffers, submitted
	// directly to a queue.
	PoolKindPrimary PoolKind = iota
	// PoolKindSecondary allocates secondary command buffers, executed
	// from within a primary recording.
	PoolKindSecondary
)

// String returns the string representation of a PoolKind.
func (k PoolKind) String() string {
	switch k {
	case PoolKindPrimary:
		return "Primary"
	case PoolKindSecondary:
		return "Secondary"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Pool allocates builders of one category for one device.
//
// The pool recycles Builder values: Recycle returns a finished
// builder's storage, and Begin reuses it for the next recording
// session. Pool is not safe for concurrent use; command pools are
// per-thread objects in the underlying APIs.
type Pool struct {
	device Device
	kind   PoolKind
	free   []*Builder
}

// NewPool creates a pool allocating builders of the given kind.
func NewPool(device Device, kind PoolKind) (*Pool, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Pool{device: device, kind: kind}, nil
}

// Kind returns the pool category.
func (p *Pool) Kind() PoolKind {
	return p.kind
}

// Device returns the device the pool allocates for.
func (p *Pool) Device() Device {
	return p.device
}

// Begin hands out a builder in the Recording state for the given native
// handle, reusing recycled storage when available.
func (p *Pool) Begin(handle CommandBufferHandle, label string) *Builder {
	var b *Builder
	if n := len(p.free); n > 0 {
		b = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		b = &Builder{}
	}
	*b = Builder{
		device: p.device,
		handle: handle,
		kind:   p.kind,
		label:  label,
	}

	slogger().Debug("gpucmd: recording session started",
		"label", label,
		"kind", p.kind.String())

	return b
}

// Recycle returns a builder's storage to the pool. The builder must not
// be used afterwards.
func (p *Pool) Recycle(b *Builder) {
	if b == nil {
		return
	}
	*b = Builder{}
	p.free = append(p.free, b)
}
