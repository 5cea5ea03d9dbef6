package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpucmd"
)

// Adapter errors.
var (
	// ErrNilHALDevice is returned when the adapter is created without a
	// HAL device or queue.
	ErrNilHALDevice = errors.New("wgpu: hal device or queue is nil")

	// ErrWrongRecording is returned when a handle passed to the adapter
	// is not a *Recording created by it.
	ErrWrongRecording = errors.New("wgpu: handle is not a wgpu recording")

	// ErrRecordingSubmitted is returned when a recording is submitted
	// twice.
	ErrRecordingSubmitted = errors.New("wgpu: recording already submitted")
)

// Device implements gpucmd.Device on top of a hal.Device and hal.Queue.
type Device struct {
	device hal.Device
	queue  hal.Queue
}

// NewDevice creates an adapter for the given HAL device and queue.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilHALDevice
	}
	return &Device{device: device, queue: queue}, nil
}

// pendingWrite is a queued buffer write, flushed on Submit.
type pendingWrite struct {
	dst    gpucmd.BufferHandle
	offset uint64
	data   []byte
}

// pendingCopy is a queued buffer-to-buffer copy, encoded on Submit.
type pendingCopy struct {
	src, dst gpucmd.BufferHandle
	regions  []hal.BufferCopy
}

// Recording is the native command-buffer handle for this backend. It
// accumulates operations until Submit flushes them to the queue.
//
// A Recording belongs to exactly one Device and one recording session.
type Recording struct {
	label     string
	writes    []pendingWrite
	copies    []pendingCopy
	submitted bool
}

// NewRecording creates an empty recording with a debug label. Pass it
// to gpucmd.NewBuilder or Pool.Begin as the native handle.
func (d *Device) NewRecording(label string) *Recording {
	return &Recording{label: label}
}

// Label returns the recording's debug label.
func (r *Recording) Label() string {
	return r.label
}

// recording asserts a gpucmd handle back to a *Recording. The builder
// protocol guarantees handles are not mixed between backends; a
// mismatch is a programming error.
func recording(cb gpucmd.CommandBufferHandle) *Recording {
	rec, ok := cb.(*Recording)
	if !ok {
		panic(fmt.Sprintf("wgpu: expected *Recording handle, got %T", cb))
	}
	return rec
}

// CmdUpdateBuffer implements gpucmd.Device. The payload is copied: the
// write happens at Submit time and must not alias caller memory.
func (d *Device) CmdUpdateBuffer(cb gpucmd.CommandBufferHandle, dst gpucmd.BufferHandle, offset, size uint64, data []byte) {
	rec := recording(cb)
	copied := make([]byte, len(data))
	copy(copied, data)
	rec.writes = append(rec.writes, pendingWrite{dst: dst, offset: offset, data: copied})
}

// CmdFillBuffer implements gpucmd.Device. The fill is expanded to a
// byte pattern and queued as a write; the HAL write path is the only
// inline-update entry point WebGPU exposes.
func (d *Device) CmdFillBuffer(cb gpucmd.CommandBufferHandle, dst gpucmd.BufferHandle, offset, size uint64, value uint32) {
	rec := recording(cb)
	rec.writes = append(rec.writes, pendingWrite{dst: dst, offset: offset, data: fillPattern(size, value)})
}

// CmdCopyBuffer implements gpucmd.Device.
func (d *Device) CmdCopyBuffer(cb gpucmd.CommandBufferHandle, src, dst gpucmd.BufferHandle, regions []gpucmd.BufferCopy) {
	rec := recording(cb)
	halRegions := make([]hal.BufferCopy, len(regions))
	for i, r := range regions {
		halRegions[i] = hal.BufferCopy{
			SrcOffset: r.SrcOffset,
			DstOffset: r.DstOffset,
			Size:      r.Size,
		}
	}
	rec.copies = append(rec.copies, pendingCopy{src: src, dst: dst, regions: halRegions})
}

// fillPattern expands a repeated 32-bit word into size bytes,
// little-endian. size is a multiple of 4 by construction.
func fillPattern(size uint64, value uint32) []byte {
	out := make([]byte, size)
	le := binary.LittleEndian
	for i := uint64(0); i+4 <= size; i += 4 {
		le.PutUint32(out[i:i+4], value)
	}
	return out
}

// Submit flushes a finished recording to the queue and waits for any
// encoded copies to complete.
func (d *Device) Submit(cb *gpucmd.CommandBuffer) error {
	handle, err := cb.Handle()
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	rec := recording(handle)
	if rec.submitted {
		return fmt.Errorf("submit %q: %w", rec.label, ErrRecordingSubmitted)
	}
	rec.submitted = true

	for _, w := range rec.writes {
		buf, ok := w.dst.(hal.Buffer)
		if !ok {
			return fmt.Errorf("submit %q: %w", rec.label, ErrWrongRecording)
		}
		if err := d.queue.WriteBuffer(buf, w.offset, w.data); err != nil {
			return fmt.Errorf("submit %q: write buffer: %w", rec.label, err)
		}
	}

	if len(rec.copies) > 0 {
		if err := d.encodeCopies(rec); err != nil {
			return fmt.Errorf("submit %q: %w", rec.label, err)
		}
	}

	gpucmd.Logger().Info("wgpu: recording submitted",
		"label", rec.label,
		"writes", len(rec.writes),
		"copies", len(rec.copies))

	return nil
}

// encodeCopies records the pending copies into a HAL command buffer,
// submits it, and waits for the GPU to drain. The HAL manages its own
// fencing internally; Submit only hands back a submission index.
func (d *Device) encodeCopies(rec *Recording) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: rec.label,
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	if err := encoder.BeginEncoding(rec.label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	for _, c := range rec.copies {
		src, srcOK := c.src.(hal.Buffer)
		dst, dstOK := c.dst.(hal.Buffer)
		if !srcOK || !dstOK {
			encoder.DiscardEncoding()
			return ErrWrongRecording
		}
		encoder.CopyBufferToBuffer(src, dst, c.regions)
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}

	return nil
}
