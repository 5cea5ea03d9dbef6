package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpucmd"
)

// ErrInvalidBufferSize is returned when a buffer is created with size 0.
var ErrInvalidBufferSize = errors.New("wgpu: invalid buffer size")

// Buffer wraps a hal.Buffer with an immutable descriptor snapshot and
// implements gpucmd.BufferAccess. The whole allocation is exposed as
// one resource, so the inner offset is always 0.
type Buffer struct {
	device *Device
	buf    hal.Buffer
	label  string
	size   uint64
	usage  gputypes.BufferUsage
}

// CreateBuffer allocates a HAL buffer and wraps it as a command target.
//
// The size is rounded up to 4 bytes so the buffer always satisfies the
// alignment preconditions of inline updates and copies.
func (d *Device) CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (*Buffer, error) {
	if size == 0 {
		return nil, ErrInvalidBufferSize
	}

	const copyBufferAlignment uint64 = 4
	alignedSize := (size + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)

	halBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignedSize,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("buffer creation failed: %w", err)
	}

	return &Buffer{
		device: d,
		buf:    halBuf,
		label:  label,
		size:   alignedSize,
		usage:  usage,
	}, nil
}

// Label returns the buffer's debug label.
func (b *Buffer) Label() string {
	return b.label
}

// Size implements gpucmd.BufferAccess.
func (b *Buffer) Size() uint64 {
	return b.size
}

// Inner implements gpucmd.BufferAccess.
func (b *Buffer) Inner() gpucmd.BufferInner {
	return gpucmd.BufferInner{Handle: b.buf, Offset: 0}
}

// Usage implements gpucmd.BufferAccess.
func (b *Buffer) Usage() gputypes.BufferUsage {
	return b.usage
}

// Device implements gpucmd.DeviceOwned.
func (b *Buffer) Device() gpucmd.Device {
	return b.device
}

// Raw returns the underlying HAL buffer handle.
func (b *Buffer) Raw() hal.Buffer {
	return b.buf
}

// Destroy releases the underlying HAL buffer. The buffer must not be
// used afterwards.
func (b *Buffer) Destroy() {
	if b.buf != nil {
		b.device.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}
