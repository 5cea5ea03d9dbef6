package gpucmd

import "github.com/gogpu/gputypes"

// fakeBuffer is a BufferAccess with configurable descriptor fields.
type fakeBuffer struct {
	size   uint64
	handle BufferHandle
	offset uint64
	usage  gputypes.BufferUsage
	device Device
}

func (b *fakeBuffer) Size() uint64 { return b.size }

func (b *fakeBuffer) Inner() BufferInner {
	return BufferInner{Handle: b.handle, Offset: b.offset}
}

func (b *fakeBuffer) Usage() gputypes.BufferUsage { return b.usage }

// fakeOwnedBuffer additionally reports an owning device.
type fakeOwnedBuffer struct {
	fakeBuffer
}

func (b *fakeOwnedBuffer) Device() Device { return b.fakeBuffer.device }

// transferDst returns a valid transfer-destination buffer of the given
// size.
func transferDst(size uint64) *fakeBuffer {
	return &fakeBuffer{
		size:   size,
		handle: "buf-0",
		usage:  gputypes.BufferUsageCopyDst,
	}
}

// updateCall is one native call captured by fakeDevice.
type updateCall struct {
	cb     CommandBufferHandle
	dst    BufferHandle
	offset uint64
	size   uint64
	data   []byte
}

type fillCall struct {
	cb     CommandBufferHandle
	dst    BufferHandle
	offset uint64
	size   uint64
	value  uint32
}

type copyCall struct {
	cb       CommandBufferHandle
	src, dst BufferHandle
	regions  []BufferCopy
}

// fakeDevice records every native call for assertions.
type fakeDevice struct {
	updates []updateCall
	fills   []fillCall
	copies  []copyCall
}

func (d *fakeDevice) CmdUpdateBuffer(cb CommandBufferHandle, dst BufferHandle, offset, size uint64, data []byte) {
	d.updates = append(d.updates, updateCall{cb: cb, dst: dst, offset: offset, size: size, data: data})
}

func (d *fakeDevice) CmdFillBuffer(cb CommandBufferHandle, dst BufferHandle, offset, size uint64, value uint32) {
	d.fills = append(d.fills, fillCall{cb: cb, dst: dst, offset: offset, size: size, value: value})
}

func (d *fakeDevice) CmdCopyBuffer(cb CommandBufferHandle, src, dst BufferHandle, regions []BufferCopy) {
	d.copies = append(d.copies, copyCall{cb: cb, src: src, dst: dst, regions: regions})
}

// typedFake wraps a fakeBuffer as a Buffer[T] for the typed
// construction path.
type typedFake[T any] struct {
	access BufferAccess
}

func (b typedFake[T]) Access() TypedAccess[T] {
	return AsTyped[T](b.access)
}
