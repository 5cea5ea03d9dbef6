// Package capture provides an in-memory command backend.
//
// capture.Device implements gpucmd.Device by storing every native call
// as a typed record instead of driving a driver. Records are
// inspectable, which makes the package useful for tests, debugging and
// dry-running a recording before it is pointed at real hardware.
//
// Design follows the typed-command-struct approach: each record kind is
// a plain struct, so a captured stream can be diffed and asserted on
// directly.
package capture

import (
	"fmt"
	"strings"

	"github.com/gogpu/gpucmd"
)

// Record is one captured native call.
type Record interface {
	// Type returns the command kind that produced the record.
	Type() gpucmd.CommandType

	// CommandBuffer returns the recording handle the call targeted.
	CommandBuffer() gpucmd.CommandBufferHandle
}

// UpdateBufferRecord is a captured CmdUpdateBuffer call.
type UpdateBufferRecord struct {
	// CB is the recording handle the call targeted.
	CB gpucmd.CommandBufferHandle
	// Dst is the native handle of the written buffer.
	Dst gpucmd.BufferHandle
	// Offset is the byte offset of the write.
	Offset uint64
	// Size is the validated byte length of the write.
	Size uint64
	// Data is a copy of the payload bytes passed to the call.
	Data []byte
}

// Type implements Record.
func (UpdateBufferRecord) Type() gpucmd.CommandType { return gpucmd.CmdUpdateBuffer }

// CommandBuffer implements Record.
func (r UpdateBufferRecord) CommandBuffer() gpucmd.CommandBufferHandle { return r.CB }

// FillBufferRecord is a captured CmdFillBuffer call.
type FillBufferRecord struct {
	CB     gpucmd.CommandBufferHandle
	Dst    gpucmd.BufferHandle
	Offset uint64
	Size   uint64
	Value  uint32
}

// Type implements Record.
func (FillBufferRecord) Type() gpucmd.CommandType { return gpucmd.CmdFillBuffer }

// CommandBuffer implements Record.
func (r FillBufferRecord) CommandBuffer() gpucmd.CommandBufferHandle { return r.CB }

// CopyBufferRecord is a captured CmdCopyBuffer call.
type CopyBufferRecord struct {
	CB      gpucmd.CommandBufferHandle
	Src     gpucmd.BufferHandle
	Dst     gpucmd.BufferHandle
	Regions []gpucmd.BufferCopy
}

// Type implements Record.
func (CopyBufferRecord) Type() gpucmd.CommandType { return gpucmd.CmdCopyBuffer }

// CommandBuffer implements Record.
func (r CopyBufferRecord) CommandBuffer() gpucmd.CommandBufferHandle { return r.CB }

// Device captures native calls as records.
//
// The zero value is ready to use. Device is not safe for concurrent
// use; like a real recording stream it expects a single writer.
type Device struct {
	records []Record
}

// New creates an empty capture device.
func New() *Device {
	return &Device{}
}

// CmdUpdateBuffer implements gpucmd.Device. The payload is copied so
// later mutation of the caller's data does not alter the record.
func (d *Device) CmdUpdateBuffer(cb gpucmd.CommandBufferHandle, dst gpucmd.BufferHandle, offset, size uint64, data []byte) {
	copied := make([]byte, len(data))
	copy(copied, data)
	d.records = append(d.records, UpdateBufferRecord{
		CB:     cb,
		Dst:    dst,
		Offset: offset,
		Size:   size,
		Data:   copied,
	})
}

// CmdFillBuffer implements gpucmd.Device.
func (d *Device) CmdFillBuffer(cb gpucmd.CommandBufferHandle, dst gpucmd.BufferHandle, offset, size uint64, value uint32) {
	d.records = append(d.records, FillBufferRecord{
		CB:     cb,
		Dst:    dst,
		Offset: offset,
		Size:   size,
		Value:  value,
	})
}

// CmdCopyBuffer implements gpucmd.Device.
func (d *Device) CmdCopyBuffer(cb gpucmd.CommandBufferHandle, src, dst gpucmd.BufferHandle, regions []gpucmd.BufferCopy) {
	captured := make([]gpucmd.BufferCopy, len(regions))
	copy(captured, regions)
	d.records = append(d.records, CopyBufferRecord{
		CB:      cb,
		Src:     src,
		Dst:     dst,
		Regions: captured,
	})
}

// Records returns the captured records in recording order.
func (d *Device) Records() []Record {
	return d.records
}

// Len returns the number of captured records.
func (d *Device) Len() int {
	return len(d.records)
}

// Reset discards all captured records.
func (d *Device) Reset() {
	d.records = d.records[:0]
}

// Dump returns a one-line-per-record description of the captured
// stream, for logging and debugging.
func (d *Device) Dump() string {
	var out strings.Builder
	for i, r := range d.records {
		switch rec := r.(type) {
		case UpdateBufferRecord:
			fmt.Fprintf(&out, "%d: UpdateBuffer offset=%d size=%d\n", i, rec.Offset, rec.Size)
		case FillBufferRecord:
			fmt.Fprintf(&out, "%d: FillBuffer offset=%d size=%d value=%#x\n", i, rec.Offset, rec.Size, rec.Value)
		case CopyBufferRecord:
			fmt.Fprintf(&out, "%d: CopyBuffer regions=%d\n", i, len(rec.Regions))
		default:
			fmt.Fprintf(&out, "%d: %s\n", i, r.Type())
		}
	}
	return out.String()
}
